package main

import (
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/report"
)

type inspectLine struct {
	Category string
	Amount   string
}

type inspectTransaction struct {
	ID       string
	Date     string
	Category string
	Amount   string
	Transfer bool
}

type inspection struct {
	Month        string
	Budgeted     bool
	Allocations  []inspectLine
	Transactions []inspectTransaction
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the allocations and transactions of a month",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		year, month, err := period(cmd)
		if err != nil {
			return err
		}
		repo, err := load(cfg, logger)
		if err != nil {
			return err
		}

		in := inspection{Month: budget.Period{Year: year, Month: month}.String()}
		if mb := repo.MonthlyBudgetFor(year, month); mb != nil {
			in.Budgeted = true
			for _, cb := range mb.SubCategoryBudgets() {
				name := "INVALID " + cb.CategoryID().String()
				if c := cb.Category(); c != nil {
					name = c.Name()
				}
				in.Allocations = append(in.Allocations, inspectLine{Category: name, Amount: report.FormatAmount(cb.Amount())})
			}
		}
		for _, t := range repo.TransactionsFor(year, month) {
			name := "INVALID " + t.CategoryID().String()
			if c := t.Category(); c != nil {
				name = c.Name()
			}
			in.Transactions = append(in.Transactions, inspectTransaction{
				ID:       t.ID().String(),
				Date:     t.Date().String(),
				Category: name,
				Amount:   report.FormatAmount(t.Amount()),
				Transfer: t.IsTransfer(),
			})
		}

		_, err = pp.Fprintln(cmd.OutOrStdout(), in)
		return err
	},
}
