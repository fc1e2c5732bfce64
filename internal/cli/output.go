package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"fundexplorer/internal/fund"
	"fundexplorer/internal/presenter"
	"fundexplorer/internal/resource"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// ResultError is returned by commands whose fund request failed.
type ResultError struct {
	Kind resource.Kind
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("%s (run the command again to retry)", e.Kind.Message())
}

// printFunds writes funds as a table. A positive limit truncates the table and
// notes how many rows were left out.
func printFunds(w io.Writer, funds []fund.Summary, limit int) {
	if len(funds) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No funds found."))
		return
	}

	shown := funds
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tCATEGORY")
	for _, f := range shown {
		category := f.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Code, f.Name, category)
	}
	tw.Flush()

	if hidden := len(funds) - len(shown); hidden > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("... and %d more", hidden)))
	}
}

// printDetail writes the metadata, statistics and windowed NAV history of a
// loaded scheme. history controls whether the NAV table is included.
func printDetail(w io.Writer, s presenter.DetailState, history bool) {
	d := s.Detail.Data

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", d.Name, d.Code)))
	printField(w, "Fund house", d.FundHouse)
	printField(w, "Type", d.Category)
	printField(w, "Category", d.SchemeCategory)
	fmt.Fprintln(w)

	if !s.HasStats {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("No NAV data in the last %s.", s.Range.Label)))
		return
	}

	st := s.Stats
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Last %s (%d points)", s.Range.Label, st.Points)))
	printField(w, "Latest NAV", fmt.Sprintf("%s (%s)", st.Latest.NAV, st.Latest.Date))
	printField(w, "Min", st.Min.String())
	printField(w, "Max", st.Max.String())
	printField(w, "Average", st.Average.StringFixed(4))
	printField(w, "Returns", renderReturns(st))
	if st.Skipped > 0 {
		printField(w, "Skipped", fmt.Sprintf("%d malformed values", st.Skipped))
	}

	if !history {
		return
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "DATE\tNAV")
	for _, p := range s.Window {
		fmt.Fprintf(tw, "%s\t%s\n", p.Date, p.NAV)
	}
	tw.Flush()
}

func printField(w io.Writer, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = "-"
	}
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", label+":")), value)
}

func printError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// detailState folds a finished detail result into the screen state for tr.
func detailState(code string, tr fund.TimeRange, r resource.Result[fund.Detail], now time.Time) presenter.DetailState {
	s := presenter.ReduceDetail(presenter.NewDetailState(code), presenter.RangeSelected{Range: tr}, now)
	return presenter.ReduceDetail(s, presenter.DetailLoaded{Result: r}, now)
}
