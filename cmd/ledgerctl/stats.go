package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/application/usecase/statistics"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
)

type statsFlags struct {
	timeRange  string
	start      string
	end        string
	txnType    string
	categories []string
}

func (f *statsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.timeRange, "range", "r", "month", "time range (day, week, month, year, custom)")
	cmd.Flags().StringVar(&f.start, "start", "", "custom range start (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&f.end, "end", "", "custom range end (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVarP(&f.txnType, "type", "t", "", "only include this transaction type")
	cmd.Flags().StringSliceVarP(&f.categories, "category", "c", nil, "only include these category ids")
}

func (f *statsFlags) input() (statistics.GetStatisticsInput, error) {
	var input statistics.GetStatisticsInput

	r, err := statistics.ResolveTimeRange(f.timeRange)
	if err != nil {
		return input, err
	}
	input.Range = r

	if r == valueobject.TimeRangeCustom {
		loc, err := loadConfig().Stats.Location()
		if err != nil {
			return input, err
		}
		if input.CustomStart, err = statistics.ParseBound(f.start, loc, false); err != nil {
			return input, err
		}
		if input.CustomEnd, err = statistics.ParseBound(f.end, loc, true); err != nil {
			return input, err
		}
	} else if f.start != "" || f.end != "" {
		return input, fmt.Errorf("--start and --end require --range custom")
	}

	if input.Type, err = parseTypeFlag(f.txnType); err != nil {
		return input, err
	}
	if input.CategoryIDs, err = parseCategoryFlag(f.categories); err != nil {
		return input, err
	}
	return input, nil
}

func statsCmd() *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate transactions over a time range",
		Long:  `Show total, average, max daily amount, category breakdown and trend for a time range.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}

			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			output, err := app.GetStatistics.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			return renderStatistics(os.Stdout, output.Statistics)
		},
	}

	flags.register(cmd)
	return cmd
}

func compareCmd() *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a time range with the preceding period of equal length",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := flags.input()
			if err != nil {
				return err
			}

			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			output, err := app.ComparePeriods.Execute(cmd.Context(), statistics.ComparePeriodsInput{
				Range:       input.Range,
				CustomStart: input.CustomStart,
				CustomEnd:   input.CustomEnd,
				Type:        input.Type,
				CategoryIDs: input.CategoryIDs,
			})
			if err != nil {
				return err
			}

			return renderComparison(os.Stdout, output.Comparison)
		},
	}

	flags.register(cmd)
	return cmd
}
