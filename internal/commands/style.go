package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/clubhouse/internal/ledger"
)

var (
	styleOutstanding = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stylePaid        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWrittenOff  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleHeading     = lipgloss.NewStyle().Bold(true)
	styleWarning     = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// statusLabel renders a settlement status with its colour. Styles collapse
// to plain text when output is not a terminal.
func statusLabel(s ledger.Status) string {
	switch s {
	case ledger.StatusPaid:
		return stylePaid.Render(string(s))
	case ledger.StatusWrittenOff:
		return styleWrittenOff.Render(string(s))
	default:
		return styleOutstanding.Render(string(s))
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func heading(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleHeading.Render(fmt.Sprintf(format, args...)))
}
