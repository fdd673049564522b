package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const displayDateLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderStatistics(w io.Writer, stats *entity.Statistics) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "Range\t%s\n", stats.TimeRange)
	fmt.Fprintf(tw, "From\t%s\n", stats.StartDate.Format(displayDateLayout))
	fmt.Fprintf(tw, "To\t%s\n", stats.EndDate.Format(displayDateLayout))
	fmt.Fprintf(tw, "Transactions\t%d\n", stats.Count)
	fmt.Fprintf(tw, "Total\t%s\n", stats.TotalAmount.StringFixed(2))
	fmt.Fprintf(tw, "Average\t%s\n", stats.AverageAmount.StringFixed(2))
	fmt.Fprintf(tw, "Max daily\t%s\n", stats.MaxDailyAmount.StringFixed(2))
	fmt.Fprintln(tw)

	if len(stats.CategoryBreakdown) > 0 {
		fmt.Fprintf(tw, "CATEGORY\tTOTAL\tCOUNT\tSHARE\n")
		for _, b := range stats.CategoryBreakdown {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f%%\n", b.CategoryName, b.TotalAmount.StringFixed(2), b.Count, b.Percentage)
		}
		fmt.Fprintln(tw)
	}

	if len(stats.TrendData) > 0 {
		fmt.Fprintf(tw, "PERIOD\tINCOME\tEXPENSE\tTRANSFER\tCOUNT\n")
		for _, p := range stats.TrendData {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
				p.PeriodKey,
				p.IncomeTotal.StringFixed(2),
				p.ExpenseTotal.StringFixed(2),
				p.TransferTotal.StringFixed(2),
				p.TransactionCount,
			)
		}
	}

	return tw.Flush()
}

func renderComparison(w io.Writer, comparison *entity.PeriodComparison) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "\tCURRENT\tPREVIOUS\tCHANGE\tCHANGE %%\n")
	fmt.Fprintf(tw, "Period\t%s\t%s\t\t\n",
		periodLabel(comparison.Current),
		periodLabel(comparison.Previous),
	)
	fmt.Fprintf(tw, "Total\t%s\t%s\t%s\t%.2f%%\n",
		comparison.Current.TotalAmount.StringFixed(2),
		comparison.Previous.TotalAmount.StringFixed(2),
		comparison.Change.TotalAmount.StringFixed(2),
		comparison.ChangePercent.TotalAmount,
	)
	fmt.Fprintf(tw, "Average\t%s\t%s\t%s\t%.2f%%\n",
		comparison.Current.AverageAmount.StringFixed(2),
		comparison.Previous.AverageAmount.StringFixed(2),
		comparison.Change.AverageAmount.StringFixed(2),
		comparison.ChangePercent.AverageAmount,
	)
	fmt.Fprintf(tw, "Count\t%d\t%d\t%+d\t%.2f%%\n",
		comparison.Current.Count,
		comparison.Previous.Count,
		comparison.Change.Count,
		comparison.ChangePercent.Count,
	)

	return tw.Flush()
}

func periodLabel(stats entity.Statistics) string {
	return stats.StartDate.Format("2006-01-02") + ".." + stats.EndDate.Format("2006-01-02")
}

func renderTransactions(w io.Writer, output *transaction.ListTransactionsOutput) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "DATE\tTYPE\tAMOUNT\tCATEGORY\tNOTE\n")
	for _, txn := range output.Transactions {
		categoryName := "-"
		if txn.Category != nil {
			categoryName = txn.Category.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			txn.Date.Format(displayDateLayout),
			txn.Type,
			txn.Amount.StringFixed(2),
			categoryName,
			truncate(txn.Note, 40),
		)
	}
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Income\t%s\n", output.Totals.IncomeTotal.StringFixed(2))
	fmt.Fprintf(tw, "Expense\t%s\n", output.Totals.ExpenseTotal.StringFixed(2))
	fmt.Fprintf(tw, "Net\t%s\n", output.Totals.NetTotal.StringFixed(2))
	if output.ActiveFilterCount > 0 {
		fmt.Fprintf(tw, "Filters\t%d active\n", output.ActiveFilterCount)
	}

	return tw.Flush()
}

func renderCategories(w io.Writer, categories []*category.CategoryOutput) error {
	tw := newTable(w)

	fmt.Fprintf(tw, "ID\tNAME\tTYPE\tCOLOR\tTRANSACTIONS\tTOTAL\n")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			c.ID,
			c.Name,
			c.Type,
			c.Color,
			c.TransactionCount,
			c.PeriodTotal.StringFixed(2),
		)
	}

	return tw.Flush()
}

func truncate(s string, limit int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
