package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
)

// Markdown renders the report as markdown, used for terminal display
// and as the plain-text alternative of the email. Colors are an HTML
// luxury; here a change is just its signed text.
func Markdown(r *networth.ReportData, p date.Period, opts Options) string {
	hide := opts.HideAmounts
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(titles[p])
	doc.PlainText(greeting(opts.RecipientName, p, r.HasComparison()))
	doc.PlainText("")

	if opts.AISummary != "" {
		doc.H2("AI Insights")
		doc.PlainText(opts.AISummary)
		doc.PlainText("")
	}

	netWorth := md.TableSet{
		Header: []string{md.Bold("Net worth"), md.Bold(FormatNetWorth(r.Current.NetWorth, hide))},
	}
	if r.HasComparison() {
		netWorth.Rows = append(netWorth.Rows, []string{
			"Change", FormatChange(r.NetWorthChange, r.NetWorthChangePercent, hide).Text,
		})
	}
	doc.Table(netWorth)

	if len(r.AssetChanges) > 0 {
		doc.H2(fmt.Sprintf("Assets (Total: %s)", FormatMoney(r.Current.TotalAssets, hide)))
		doc.Table(deltaTable(r.AssetChanges, r.HasComparison(), hide))
	}
	if len(r.DebtChanges) > 0 {
		doc.H2(fmt.Sprintf("Liabilities (Total: %s)", FormatMoney(r.Current.TotalDebts, hide)))
		doc.Table(deltaTable(r.DebtChanges, r.HasComparison(), hide))
	}

	if allocation := networth.Allocation(r.CurrentUnaggregated); len(allocation) > 0 {
		doc.H2("Asset Allocation")
		table := md.TableSet{Header: []string{"Category", "Share"}}
		for _, label := range networth.AllocationOrder {
			if pct, ok := allocation[label]; ok {
				table.Rows = append(table.Rows, []string{label, fmt.Sprintf("%.1f%%", pct)})
			}
		}
		doc.Table(table)
	}

	doc.Build()
	return buf.String()
}

var titles = map[date.Period]string{
	date.Daily:     "Daily Portfolio Report",
	date.Weekly:    "Weekly Portfolio Report",
	date.Monthly:   "Monthly Portfolio Report",
	date.Quarterly: "Quarterly Portfolio Report",
	date.Yearly:    "Yearly Portfolio Report",
}

func deltaTable(deltas []networth.Delta, hasComparison, hide bool) md.TableSet {
	table := md.TableSet{Header: []string{"Account", "Sheet", "Value"}}
	if hasComparison {
		table.Header = append(table.Header, "Change")
	}
	for _, d := range deltas {
		row := []string{d.Name, d.SheetName, FormatMoney(d.Current, hide)}
		if hasComparison {
			row = append(row, FormatChange(d.Change, d.ChangePercent, hide).Text)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
