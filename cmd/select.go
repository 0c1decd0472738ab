package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"c4mut.dev/pkg/c4mut/internal/selector"
)

// selectCmd represents the select command.
var selectCmd = newSelectCmd()

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Show which mutant the current configuration activates",
		Long: `Run the selector exactly as an instrumented compiler does at startup and
report the result.

The raw value comes from --value, else from the mutation.value config key,
else from the environment variable named by --env (default ` + defaultMutationEnv + `).
A non-numeric value is an error. The "` + selector.SelectedTag + `" line is written
to stderr, where sweep tooling expects it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envName, err := cmd.Flags().GetString(envFlagName)
			if err != nil {
				return err
			}

			if envName == "" {
				envName = viper.GetString(mutationEnvKey)
			}

			s := selector.New(mutants,
				selector.WithDiagnostics(cmd.ErrOrStderr()),
				selector.WithLogger(slog.Default()),
			)

			selection, err := s.InitializeFromEnv(envName, mutationLookup(cmd))
			if err != nil {
				return err
			}

			return ui.DisplaySelection(cmd.Context(), selection)
		},
	}

	cmd.Flags().String(valueFlagName, "", "raw mutation value, overriding config and environment")
	cmd.Flags().String(envFlagName, "", "environment variable holding the raw mutation value")

	return cmd
}

func init() {
	rootCmd.AddCommand(selectCmd)
}

// mutationLookup resolves the raw value from the --value flag, the config
// file and finally the process environment, in that order.
func mutationLookup(cmd *cobra.Command) selector.LookupFunc {
	return func(name string) (string, bool) {
		if flag := cmd.Flags().Lookup(valueFlagName); flag != nil && flag.Changed {
			return flag.Value.String(), true
		}

		if viper.IsSet(mutationValueKey) {
			return viper.GetString(mutationValueKey), true
		}

		return os.LookupEnv(name)
	}
}
