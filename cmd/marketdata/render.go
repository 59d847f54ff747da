package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
)

func renderTerminal(md string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// escapeCell keeps user-supplied text from breaking a markdown table row.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return entity.NotAvailable
	}
	return d.Decimal.String()
}

func searchMarkdown(query string, matches []entity.SearchMatch) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search: %s\n\n", escapeCell(query))
	if len(matches) == 0 {
		b.WriteString("_No matches._\n")
		return b.String()
	}
	b.WriteString("| Symbol | Name | Type | Region |\n|---|---|---|---|\n")
	for _, m := range matches {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapeCell(m.Symbol), escapeCell(m.Name), escapeCell(m.Type), escapeCell(m.Region))
	}
	return b.String()
}

func quoteMarkdown(symbol string, q entity.Quote) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeCell(symbol))
	b.WriteString("| Price | Change | Change % |\n|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s%% |\n", q.Price.String(), q.Change.String(), q.ChangePercent.String())
	return b.String()
}

func overviewMarkdown(symbol string, o entity.Overview) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n\n", escapeCell(o.Name), escapeCell(symbol))
	fmt.Fprintf(&b, "%s / %s / %s\n\n", escapeCell(o.Exchange), escapeCell(o.Sector), escapeCell(o.Industry))
	if o.Description != "" && o.Description != entity.NotAvailable {
		fmt.Fprintf(&b, "%s\n\n", o.Description)
	}

	exDiv := entity.NotAvailable
	if o.ExDividendDate != nil {
		exDiv = o.ExDividendDate.Format(entity.DateLayout)
	}
	rows := [][2]string{
		{"Market cap", nullDecimal(o.MarketCapitalization)},
		{"P/E", nullDecimal(o.PERatio)},
		{"EPS", nullDecimal(o.EPS)},
		{"Book value", nullDecimal(o.BookValue)},
		{"Dividend yield", nullDecimal(o.DividendYield)},
		{"Dividend per share", nullDecimal(o.DividendPerShare)},
		{"Payout ratio", nullDecimal(o.PayoutRatio)},
		{"Ex-dividend date", exDiv},
		{"Return on equity", nullDecimal(o.ReturnOnEquity)},
		{"52 week high", nullDecimal(o.Week52High)},
		{"52 week low", nullDecimal(o.Week52Low)},
		{"50 day average", nullDecimal(o.MovingAverage50Day)},
		{"200 day average", nullDecimal(o.MovingAverage200Day)},
	}
	b.WriteString("| Metric | Value |\n|---|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r[0], r[1])
	}
	return b.String()
}

// historyMarkdown prints the last n dates, newest first. n <= 0 prints everything.
func historyMarkdown(symbol string, ts entity.TimeSeries, n int) string {
	dates := ts.Dates()
	if n > 0 && len(dates) > n {
		dates = dates[len(dates)-n:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s daily\n\n", escapeCell(symbol))
	b.WriteString("| Date | Open | High | Low | Close | Volume |\n|---|---:|---:|---:|---:|---:|\n")
	for i := len(dates) - 1; i >= 0; i-- {
		bar := ts[dates[i]]
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n", dates[i],
			bar.Open.String(), bar.High.String(), bar.Low.String(), bar.Close.String(), bar.Volume.String())
	}
	return b.String()
}
