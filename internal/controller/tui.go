package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "c4mut.dev/pkg/c4mut/internal/model"
)

// Lines around the table: title, blank, blank, summary, help.
const reservedLines = 5

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// TUI implements UI using Bubble Tea for the catalog browser. Resolutions and
// selections are short and printed as plain text.
type TUI struct {
	*SimpleUI
	cmd *cobra.Command
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{SimpleUI: NewSimpleUI(cmd), cmd: cmd}
}

// DisplayCatalog opens a scrollable family table until the user quits.
func (p *TUI) DisplayCatalog(ctx context.Context, families []m.Family, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	model := newCatalogModel(families, count)

	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.cmd.InOrStdin()),
		tea.WithOutput(p.cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("catalog browser: %w", err)
	}

	return nil
}

// catalogModel is the Bubble Tea model of the family browser.
type catalogModel struct {
	table    table.Model
	families []m.Family
	count    int
	quitting bool
}

func newCatalogModel(families []m.Family, count int) catalogModel {
	columns := []table.Column{
		{Title: "Family", Width: 14},
		{Title: "Base", Width: 6},
		{Title: "End", Width: 6},
		{Title: "Variants", Width: 8},
	}

	rows := make([]table.Row, 0, len(families))
	for _, f := range families {
		rows = append(rows, table.Row{
			f.Name,
			fmt.Sprintf("%d", f.Base),
			fmt.Sprintf("%d", f.End()),
			fmt.Sprintf("%d", f.Variants),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	return catalogModel{table: t, families: families, count: count}
}

func (cm catalogModel) Init() tea.Cmd {
	return nil
}

func (cm catalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - reservedLines
		if height < 1 {
			height = 1
		}

		cm.table.SetHeight(height)

		return cm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			cm.quitting = true
			return cm, tea.Quit
		}
	}

	var cmd tea.Cmd
	cm.table, cmd = cm.table.Update(msg)

	return cm, cmd
}

// selected returns the family under the cursor.
func (cm catalogModel) selected() (m.Family, bool) {
	i := cm.table.Cursor()
	if i < 0 || i >= len(cm.families) {
		return m.Family{}, false
	}

	return cm.families[i], true
}

func (cm catalogModel) View() string {
	if cm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("c4mut - mutant catalog"))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(cm.table.View()))
	b.WriteString("\n")

	if f, ok := cm.selected(); ok {
		fmt.Fprintf(&b, "  %s: ids %d..%d, %d variant(s)\n", f.Name, f.Base, f.End(), f.Variants)
	}

	b.WriteString(helpStyle.Render(fmt.Sprintf("  %d families, count %d | ↑/k ↓/j move | q quit", len(cm.families), cm.count)))
	b.WriteString("\n")

	return b.String()
}
