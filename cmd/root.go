// Package cmd provides the root command and CLI setup for c4mut.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"c4mut.dev/pkg/c4mut/internal/catalog"
	"c4mut.dev/pkg/c4mut/internal/controller"
)

var ui controller.UI
var mutants *catalog.Catalog

// schemaFileFlag is a root-level flag shared by the schema commands.
var schemaFileFlag string

// verboseFlag switches file logging to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
	}

	// Initialize shared dependencies.
	mutants = catalog.Atomics()
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
}

const rootLongDescription = `c4mut is the mutant catalog of a compiler mutation-testing setup for
atomic-operation lowering. Every mutant has a stable numeric id; families of
related mutants occupy contiguous id ranges.

Exactly one mutant is active per process, selected by an integer read from
the ` + defaultMutationEnv + ` environment variable (reduced modulo the
catalog size, so any sweep counter is valid).`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "c4mut",
		Short: "Compiler mutant catalog and selector",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&schemaFileFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"schema file written by 'schema export' and read by 'schema check'",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
