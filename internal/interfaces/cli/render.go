package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/opsbench/opsctl/internal/application/services"
)

const amountFormat = "#,###.##"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	activeStyle = cellStyle.
			Foreground(lipgloss.Color("46"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// formatAmount renders a dollar amount with two decimals and thousands separators
func formatAmount(amount float64) string {
	return "$" + humanize.FormatFloat(amountFormat, amount)
}

// renderBilling renders the month-to-date report as a table with a total line
func renderBilling(report *services.BillingReport) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("Start", "End", "Amount (USD)", "Estimated").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	for _, r := range report.Records {
		estimated := ""
		if r.Estimated {
			estimated = "yes"
		}
		t.Row(r.Start, r.End, formatAmount(r.Amount), estimated)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Month-to-date spend for account %s", report.Identity.Account)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s to %s", report.Period.StartString(), report.Period.EndString())))
	b.WriteString("\n")
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total: %s\n", formatAmount(report.Total)))
	return b.String()
}

// renderContexts renders contexts in file order, marking the current one
func renderContexts(summaries []services.ContextSummary) string {
	active := -1
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("CURRENT", "NAME", "CLUSTER", "USER")

	for i, s := range summaries {
		marker := ""
		if s.Active {
			marker = "*"
			active = i
		}
		t.Row(marker, s.Name.Value(), s.Cluster, s.User)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row == active:
			return activeStyle
		default:
			return cellStyle
		}
	})
	return t.String() + "\n"
}
