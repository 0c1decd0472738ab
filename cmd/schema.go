package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"c4mut.dev/pkg/c4mut/internal/catalog"
)

const stdioPath = "-"

// schemaCmd represents the schema command.
var schemaCmd = newSchemaCmd()

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export or verify the mutant id layout",
		Long: `Mutant ids are positional: inserting, removing or resizing a family shifts
every later id. Export the layout next to any stored mutant ids and check it
before reusing them.`,
	}

	cmd.AddCommand(newSchemaExportCmd(), newSchemaCheckCmd())

	return cmd
}

func newSchemaExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the current id layout as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := schemaPath(args)
			if path == stdioPath {
				return mutants.ExportSchema(cmd.OutOrStdout())
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create schema file: %w", err)
			}

			if err := mutants.ExportSchema(f); err != nil {
				_ = f.Close()
				return err
			}

			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write schema file: %w", err)
			}

			cmd.Printf("wrote %s (%d families, count %d)\n", path, len(mutants.Families()), mutants.Count())

			return nil
		},
	}
}

func newSchemaCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Fail if a stored id layout no longer matches the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := schemaPath(args)

			var stored catalog.Schema

			if path == stdioPath {
				s, err := catalog.LoadSchema(cmd.InOrStdin())
				if err != nil {
					return err
				}

				stored = s
			} else {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open schema file: %w", err)
				}
				defer f.Close()

				s, err := catalog.LoadSchema(f)
				if err != nil {
					return err
				}

				stored = s
			}

			if err := mutants.CheckSchema(stored); err != nil {
				return err
			}

			cmd.Printf("%s matches the catalog\n", path)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func schemaPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	if schemaFileFlag != "" {
		return schemaFileFlag
	}

	if path := viper.GetString(outputFlagName); path != "" {
		return path
	}

	return defaultSchemaFile
}
