// Package controller provides output adapters for displaying the mutant
// catalog, id resolutions and the active selection.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

// Resolution is the result of resolving one user query (an id or a family
// name) against the catalog.
type Resolution struct {
	Query       string
	ID          m.MutantID
	Family      m.Family
	Offset      int
	Known       bool
	Suggestions []string // close family names when the query did not match
}

// UI defines how catalog information is shown.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayCatalog(ctx context.Context, families []m.Family, count int) error
	DisplayResolutions(ctx context.Context, resolutions []Resolution) error
	DisplaySelection(ctx context.Context, selection m.Selection) error
}

// NewUI returns an interactive UI when tty is true and a plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
