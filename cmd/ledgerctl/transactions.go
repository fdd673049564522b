package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/application/usecase/transaction"
)

func transactionsCmd() *cobra.Command {
	var (
		txnType    string
		categories []string
		sortBy     string
	)

	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "List transactions with filters and sorting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := transaction.ParseSortOrder(sortBy)
			if err != nil {
				return err
			}
			criteria := transaction.Criteria{SortBy: order}
			if criteria.TypeFilter, err = parseTypeFlag(txnType); err != nil {
				return err
			}
			if criteria.SelectedCategories, err = parseCategoryFlag(categories); err != nil {
				return err
			}

			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			output, err := app.ListTransactions.Execute(cmd.Context(), transaction.ListTransactionsInput{
				Criteria: criteria,
			})
			if err != nil {
				return err
			}

			return renderTransactions(os.Stdout, output)
		},
	}

	cmd.Flags().StringVarP(&txnType, "type", "t", "", "only include this transaction type")
	cmd.Flags().StringSliceVarP(&categories, "category", "c", nil, "only include these category ids")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(transaction.DefaultSortOrder), "sort order (highest, lowest, newest, oldest)")
	return cmd
}
