package cmd

import (
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"c4mut.dev/pkg/c4mut/internal/catalog"
	"c4mut.dev/pkg/c4mut/internal/controller"
	m "c4mut.dev/pkg/c4mut/internal/model"
	"c4mut.dev/pkg/c4mut/internal/selector"
)

const maxSuggestions = 3

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <id|name[:variant]>...",
		Short: "Resolve mutant ids to family names and back",
		Long: `Resolve each argument against the catalog.

Numeric arguments are mutant ids and resolve to their family and variant
offset; with --raw they are first reduced modulo the catalog size, exactly as
the selector does. Other arguments are family names, optionally followed by
":<variant>", and resolve to the matching id.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := cmd.Flags().GetBool(rawFlagName)
			if err != nil {
				return err
			}

			resolutions := make([]controller.Resolution, 0, len(args))
			for _, arg := range args {
				resolutions = append(resolutions, resolveQuery(mutants, arg, raw))
			}

			return ui.DisplayResolutions(cmd.Context(), resolutions)
		},
	}

	cmd.Flags().Bool(rawFlagName, false, "treat numbers as raw configuration values")

	return cmd
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func resolveQuery(c *catalog.Catalog, query string, raw bool) controller.Resolution {
	query = strings.TrimSpace(query)

	if n, err := strconv.ParseInt(query, 10, 64); err == nil {
		if raw {
			return resolveID(c, query, selector.Reduce(n, c.Count()))
		}

		if n < 0 || n >= int64(c.Count()) {
			return controller.Resolution{Query: query}
		}

		return resolveID(c, query, m.MutantID(n))
	}

	name, variant := query, 0

	if i := strings.LastIndex(query, ":"); i >= 0 {
		v, err := strconv.Atoi(query[i+1:])
		if err != nil {
			return controller.Resolution{Query: query, Suggestions: suggestNames(c, query)}
		}

		name, variant = query[:i], v
	}

	family, ok := c.Lookup(name)
	if !ok {
		return controller.Resolution{Query: query, Suggestions: suggestNames(c, name)}
	}

	if variant < 0 || variant >= family.Variants {
		return controller.Resolution{Query: query}
	}

	return resolveID(c, query, family.Base+m.MutantID(variant))
}

func resolveID(c *catalog.Catalog, query string, id m.MutantID) controller.Resolution {
	owner := c.OwnerOf(id)

	return controller.Resolution{
		Query:  query,
		ID:     id,
		Family: owner,
		Offset: owner.Offset(id),
		Known:  true,
	}
}

func suggestNames(c *catalog.Catalog, pattern string) []string {
	matches := fuzzy.Find(strings.ToUpper(pattern), c.Names())

	suggestions := make([]string, 0, maxSuggestions)
	for _, match := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}

		suggestions = append(suggestions, match.Str)
	}

	return suggestions
}
