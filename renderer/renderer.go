// Package renderer turns report data into the HTML email and its
// markdown rendition.
package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/networth-report/networth"
	"github.com/networth-report/networth/date"
)

//go:embed templates/*.html
var templates embed.FS

// Options configure a rendering.
type Options struct {
	RecipientName string
	AISummary     string // markdown, as the model produced it
	HideAmounts   bool
	Export        bool // collapsible sections for local viewing
}

// topDebts caps the liabilities listing.
const topDebts = 20

// Subject returns the email subject line for a report.
func Subject(p date.Period, on date.Date) string {
	descriptions := map[date.Period]string{
		date.Daily:     "balance activity",
		date.Weekly:    "weekly summary",
		date.Monthly:   "monthly summary",
		date.Quarterly: "quarterly summary",
		date.Yearly:    "yearly summary",
	}
	return fmt.Sprintf("Your portfolio %s for %s", descriptions[p], on.Format("Jan 02"))
}

// greeting phrases the report opening per period, or a plain snapshot
// line when there is nothing to compare against.
func greeting(name string, p date.Period, hasComparison bool) string {
	hi := "Hi,"
	if name != "" {
		hi = fmt.Sprintf("Hi %s,", name)
	}
	if !hasComparison {
		return hi + " here's a snapshot of your current account balances."
	}
	periods := map[date.Period]string{
		date.Daily:     "here's a recap of account balances that changed yesterday",
		date.Weekly:    "here's a recap of changes over the past week",
		date.Monthly:   "here's a recap of changes over the past month",
		date.Quarterly: "here's a recap of changes over the past quarter",
		date.Yearly:    "here's a recap of changes over the past year",
	}
	return fmt.Sprintf("%s %s.", hi, periods[p])
}

// --- view model ---

type accountRow struct {
	Name        string
	Institution string
	Value       string
	Change      *Change
}

type sectionView struct {
	Name     string
	Count    int
	Total    string
	Change   *Change
	Accounts []accountRow
}

type sheetView struct {
	Name     string
	Count    int
	Total    string
	Change   *Change
	Sections []sectionView
	// Single is set when the sheet has one section: the section
	// header is elided and accounts listed directly.
	Single bool
}

type allocationRow struct {
	Label   string
	Percent string
	Color   string
	Width   int // percent, for the bar
}

type emailView struct {
	Greeting       string
	AISummary      template.HTML
	NetWorth       string
	NetWorthChange *Change

	AssetsTotal  string
	AssetsChange *Change
	Sheets       []sheetView

	DebtsTotal  string
	DebtsChange *Change
	Debts       []accountRow

	Allocation []allocationRow

	Export     bool
	ReportDate string
}

// allocationColors matches categories to their chart colors.
var allocationColors = map[string]string{
	networth.Stocks:     "#4CAF50",
	networth.Bonds:      "#2196F3",
	networth.Crypto:     "#FF9800",
	networth.RealEstate: "#9C27B0",
	networth.Cash:       "#00BCD4",
	networth.Other:      "#795548",
}

// HTML renders the report as a self-contained HTML email body.
func HTML(r *networth.ReportData, p date.Period, opts Options) (string, error) {
	view, err := buildView(r, p, opts)
	if err != nil {
		return "", err
	}
	content, err := templates.ReadFile("templates/email.html")
	if err != nil {
		return "", fmt.Errorf("cannot read email template: %w", err)
	}
	tmpl, err := template.New("email").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("cannot parse email template: %w", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("cannot render report: %w", err)
	}
	return b.String(), nil
}

func buildView(r *networth.ReportData, p date.Period, opts Options) (*emailView, error) {
	hide := opts.HideAmounts
	view := &emailView{
		Greeting:   greeting(opts.RecipientName, p, r.HasComparison()),
		NetWorth:   FormatNetWorth(r.Current.NetWorth, hide),
		Export:     opts.Export,
		ReportDate: time.Now().Format("Jan 02, 2006"),
	}

	if opts.AISummary != "" {
		var buf bytes.Buffer
		if err := goldmark.Convert([]byte(opts.AISummary), &buf); err != nil {
			return nil, fmt.Errorf("cannot convert AI summary to HTML: %w", err)
		}
		view.AISummary = template.HTML(buf.String())
	}

	if r.HasComparison() {
		c := FormatChange(r.NetWorthChange, r.NetWorthChangePercent, hide)
		view.NetWorthChange = &c
	}

	view.Sheets = buildSheets(r, hide)
	view.AssetsTotal = FormatMoney(r.Current.TotalAssets, hide)
	view.DebtsTotal = FormatMoney(r.Current.TotalDebts, hide)
	if r.HasComparison() {
		assetChange := sumChanges(r.AssetChanges, r.Current.Currency)
		if !assetChange.IsZero() {
			c := FormatChange(assetChange, assetChange.PercentOf(r.Previous.TotalAssets), hide)
			view.AssetsChange = &c
		}
		debtChange := sumChanges(r.DebtChanges, r.Current.Currency)
		if !debtChange.IsZero() {
			c := FormatChange(debtChange, debtChange.PercentOf(r.Previous.TotalDebts), hide)
			view.DebtsChange = &c
		}
	}

	for _, d := range r.DebtChanges {
		if len(view.Debts) == topDebts {
			break
		}
		view.Debts = append(view.Debts, newAccountRow(d, r.HasComparison(), hide))
	}

	allocation := networth.Allocation(r.CurrentUnaggregated)
	for _, label := range networth.AllocationOrder {
		pct, ok := allocation[label]
		if !ok {
			continue
		}
		view.Allocation = append(view.Allocation, allocationRow{
			Label:   label,
			Percent: fmt.Sprintf("%.1f%%", pct),
			Color:   allocationColors[label],
			Width:   int(pct + 0.5),
		})
	}
	return view, nil
}

// buildSheets groups asset deltas by sheet then section, computing
// totals at both levels. An account named like its section label is a
// provider artifact duplicating the section total, so it is skipped.
func buildSheets(r *networth.ReportData, hide bool) []sheetView {
	type sectionAcc struct {
		name     string
		deltas   []networth.Delta
		current  networth.Money
		previous networth.Money
	}
	type sheetAcc struct {
		name     string
		sections []*sectionAcc
		byName   map[string]*sectionAcc
	}

	var sheets []*sheetAcc
	byName := make(map[string]*sheetAcc)
	for _, d := range r.AssetChanges {
		sheetName := d.SheetName
		if sheetName == "" {
			sheetName = "Uncategorized"
		}
		sectionName := d.SectionName
		if sectionName == "" {
			sectionName = "Default"
		}
		if d.Name == sectionName {
			continue
		}
		sheet, ok := byName[sheetName]
		if !ok {
			sheet = &sheetAcc{name: sheetName, byName: make(map[string]*sectionAcc)}
			byName[sheetName] = sheet
			sheets = append(sheets, sheet)
		}
		section, ok := sheet.byName[sectionName]
		if !ok {
			section = &sectionAcc{name: sectionName}
			sheet.byName[sectionName] = section
			sheet.sections = append(sheet.sections, section)
		}
		section.deltas = append(section.deltas, d)
		section.current = section.current.Add(d.Current)
		section.previous = section.previous.Add(d.Previous)
	}

	type sortable struct {
		view  sheetView
		total float64
	}

	currency := r.Current.Currency
	ordered := make([]sortable, 0, len(sheets))
	for _, sheet := range sheets {
		sv := sheetView{Name: sheet.name, Single: len(sheet.sections) == 1}
		var sheetCurrent, sheetPrevious networth.Money
		for _, section := range sheet.sections {
			slices.SortFunc(section.deltas, func(a, b networth.Delta) int {
				switch {
				case a.Current.GreaterThan(b.Current):
					return -1
				case b.Current.GreaterThan(a.Current):
					return 1
				default:
					return 0
				}
			})
			secView := sectionView{
				Name:  section.name,
				Count: len(section.deltas),
				Total: FormatMoney(withCurrency(section.current, currency), hide),
			}
			secView.Change = totalChange(r, section.current.Sub(section.previous), section.previous, currency, hide)
			for _, d := range section.deltas {
				secView.Accounts = append(secView.Accounts, newAccountRow(d, r.HasComparison(), hide))
			}
			sv.Sections = append(sv.Sections, secView)
			sv.Count += len(section.deltas)
			sheetCurrent = sheetCurrent.Add(section.current)
			sheetPrevious = sheetPrevious.Add(section.previous)
		}
		sv.Total = FormatMoney(withCurrency(sheetCurrent, currency), hide)
		sv.Change = totalChange(r, sheetCurrent.Sub(sheetPrevious), sheetPrevious, currency, hide)
		ordered = append(ordered, sortable{view: sv, total: sheetCurrent.AsFloat()})
	}

	// Largest sheets first.
	slices.SortFunc(ordered, func(a, b sortable) int {
		switch {
		case a.total > b.total:
			return -1
		case a.total < b.total:
			return 1
		default:
			return strings.Compare(a.view.Name, b.view.Name)
		}
	})
	views := make([]sheetView, 0, len(ordered))
	for _, s := range ordered {
		views = append(views, s.view)
	}
	return views
}

// totalChange formats a computed total change, or nil when there is no
// comparison or no movement.
func totalChange(r *networth.ReportData, change, previous networth.Money, currency string, hide bool) *Change {
	if !r.HasComparison() || change.IsZero() {
		return nil
	}
	change = withCurrency(change, currency)
	c := FormatChange(change, change.PercentOf(previous), hide)
	return &c
}

func newAccountRow(d networth.Delta, hasComparison, hide bool) accountRow {
	row := accountRow{
		Name:        d.Name,
		Institution: d.Institution,
		Value:       FormatMoney(d.Current, hide),
	}
	if hasComparison {
		c := FormatChange(d.Change, d.ChangePercent, hide)
		row.Change = &c
	}
	return row
}

func sumChanges(deltas []networth.Delta, currency string) networth.Money {
	total := networth.M(0, currency)
	for _, d := range deltas {
		total = total.Add(d.Change)
	}
	return total
}

// withCurrency pins zero-valued sums (which carry the weak "" currency)
// to the report currency before formatting.
func withCurrency(m networth.Money, currency string) networth.Money {
	return networth.M(0, currency).Add(m)
}
