package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

const unknownLabel = "unknown"

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayCatalog prints one row per family.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, families []m.Family, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderCatalogTable(families, count))

	return nil
}

func renderCatalogTable(families []m.Family, count int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Family", "Base", "End", "Variants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	for _, f := range families {
		table.Append([]string{
			f.Name,
			fmt.Sprintf("%d", f.Base),
			fmt.Sprintf("%d", f.End()),
			fmt.Sprintf("%d", f.Variants),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d families", len(families)),
		"",
		"count",
		fmt.Sprintf("%d", count),
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayResolutions prints the family and variant of each query.
func (s *SimpleUI) DisplayResolutions(ctx context.Context, resolutions []Resolution) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Query", "Id", "Family", "Variant"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)

	var hints []string

	for _, r := range resolutions {
		if !r.Known {
			table.Append([]string{r.Query, "-", unknownLabel, "-"})

			if len(r.Suggestions) > 0 {
				hints = append(hints, fmt.Sprintf("%s: did you mean %s?", r.Query, strings.Join(r.Suggestions, ", ")))
			}

			continue
		}

		table.Append([]string{
			r.Query,
			fmt.Sprintf("%d", r.ID),
			r.Family.Name,
			fmt.Sprintf("%d", r.Offset),
		})
	}

	table.Render()
	s.printf("%s", tableBuffer.String())

	for _, hint := range hints {
		s.printf("%s\n", hint)
	}

	return nil
}

// DisplaySelection prints which mutant the configuration activated.
func (s *SimpleUI) DisplaySelection(ctx context.Context, selection m.Selection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n", formatSelection(selection))

	return nil
}

func formatSelection(selection m.Selection) string {
	if !selection.Configured {
		return "mutation testing disabled"
	}

	return fmt.Sprintf("selected %d (= %s:%d, input=%d)",
		selection.ID, selection.Family.Name, selection.Offset, selection.Raw)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
