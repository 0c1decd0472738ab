package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List mutant families and their id ranges",
		Long: `List every mutant family with its base id, last id and number of
variants. On a terminal the list opens in an interactive browser.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ui.DisplayCatalog(cmd.Context(), mutants.Families(), mutants.Count())
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
