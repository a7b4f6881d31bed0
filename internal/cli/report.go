package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/GSKumar1109/claimsreporter/internal/service/calculator"
	"github.com/GSKumar1109/claimsreporter/internal/service/workspace"
)

func newReportCommand(root *rootOptions) *cobra.Command {
	var depot string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a depot's rounded totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.loadConfig()
			if err != nil {
				return err
			}
			sess, err := openSession(cfg)
			if err != nil {
				return err
			}
			defer sess.Close()

			view, err := sess.ws.View(depot, false)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Report.CompanyName)
			fmt.Fprintf(cmd.OutOrStdout(), "%s — %s for %s\n", cfg.Report.ReportTitle, view.Depot, view.Period.Label())
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(view))
			return nil
		},
	}
	cmd.Flags().StringVar(&depot, "depot", "", "depot name (required)")
	_ = cmd.MarkFlagRequired("depot")
	return cmd
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// renderReport one line per syndicate: product cases, then row totals; a Depot Total line closes it.
func renderReport(view workspace.DepotView) string {
	report := view.Report.Rounded()

	headers := []string{"Syndicate", "Shop IDs"}
	for _, name := range view.Products {
		headers = append(headers, name+" cases")
	}
	headers = append(headers, "Cases", "Per Case", "Amount")

	rows := make([][]string, 0, len(report.Rows)+1)
	for _, r := range report.Rows {
		row := []string{r.Syndicate, strings.Join(r.ShopIDs, ", ")}
		for _, l := range r.Products {
			row = append(row, calculator.FormatWhole(l.Cases))
		}
		row = append(row, totalsCells(r.Totals)...)
		rows = append(rows, row)
	}
	footer := []string{"Depot Total", ""}
	for _, c := range report.Columns {
		footer = append(footer, calculator.FormatWhole(c.Cases))
	}
	footer = append(footer, totalsCells(report.Depot)...)
	rows = append(rows, footer)
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == last:
				return totalStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

func totalsCells(t calculator.Totals) []string {
	return []string{
		calculator.FormatWhole(t.Cases),
		calculator.FormatWhole(t.PerCase),
		calculator.FormatWhole(t.Amount),
	}
}
