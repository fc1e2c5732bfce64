package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fundexplorer/internal/fund"
	"fundexplorer/internal/resource"
	"fundexplorer/internal/service"
)

func parseCategoryFlag(s string) (fund.Category, error) {
	c, ok := fund.ParseCategory(s)
	if !ok {
		names := make([]string, 0, len(fund.Categories))
		for _, c := range fund.Categories {
			names = append(names, string(c))
		}
		return "", fmt.Errorf("unknown category %q (want one of %s)", s, strings.Join(names, ", "))
	}
	return c, nil
}

// runListing awaits a listing stream, narrows it to category and prints it.
func runListing(cmd *cobra.Command, stream <-chan resource.Result[[]fund.Summary], category fund.Category, limit int) error {
	r := resource.Await(stream)
	if r.IsError() {
		return &ResultError{Kind: r.Kind}
	}

	funds := fund.Filter(r.Data, category.Matches)
	printFunds(cmd.OutOrStdout(), funds, limit)
	return nil
}

func newListCmd(a *app) *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every fund scheme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}
			return runListing(cmd, a.service.ListAll(cmd.Context()), c, limit)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show one category (equity, debt, hybrid, solution, other)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows to print (0 = all)")

	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find funds whose name contains QUERY",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			return runListing(cmd, a.service.Search(cmd.Context(), query), c, 0)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show one category (equity, debt, hybrid, solution, other)")

	return cmd
}

func newTopCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "List funds from well known fund houses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runListing(cmd, a.service.GetTop(cmd.Context(), limit), fund.CategoryAll, 0)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultTopLimit, "maximum number of funds")

	return cmd
}
