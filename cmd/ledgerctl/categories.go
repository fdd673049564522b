package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/application/usecase/category"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories with their transaction counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			output, err := app.ListCategories.Execute(cmd.Context(), category.ListCategoriesInput{})
			if err != nil {
				return err
			}

			return renderCategories(os.Stdout, output.Categories)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default categories that are missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			output, err := app.SeedDefaults.Execute(cmd.Context())
			if err != nil {
				return err
			}

			cmd.Printf("Created %d categories, %d already present\n", len(output.Created), output.Skipped)
			return nil
		},
	}
}
