package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/executors"
	"github.com/yurifrl/pocketmoney/pkg/report"
	"github.com/yurifrl/pocketmoney/pkg/ynab4"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "pocketmoney",
	Short:         "Report what is left in each YNAB4 budget category",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var amountsCmd = &cobra.Command{
	Use:   "amounts",
	Short: "Print the remaining amount of each category for a month",
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

		if repo.MonthlyBudgetFor(year, month) == nil {
			logger.Warn("no monthly budget recorded", "year", year, "month", month)
		}
		amounts := repo.CategoryAmounts(year, month)
		for _, t := range amounts.Unallocated() {
			logger.Debug("transaction not counted", "id", t.ID(), "category", t.Category(), "amount", t.Amount())
		}
		return report.Write(cmd.OutOrStdout(), cfg.Format, report.New(amounts, repo))
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List visible categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		repo, err := load(cfg, logger)
		if err != nil {
			return err
		}

		masters := repo.VisibleMasterCategories()
		switch flow, _ := cmd.Flags().GetString("flow"); flow {
		case "":
		case "inflow":
			masters = repo.CategoriesByFlow(budget.Inflow)
		case "outflow":
			masters = repo.CategoriesByFlow(budget.Outflow)
		default:
			return fmt.Errorf("invalid flow %q: must be inflow or outflow", flow)
		}

		out := cmd.OutOrStdout()
		for _, m := range masters {
			fmt.Fprintf(out, "%s (%s)\n", m.Name(), m.Type())
			for _, sub := range m.VisibleSubCategories() {
				fmt.Fprintf(out, "  %s\n", sub.Name())
			}
		}
		return nil
	},
}

var monthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the months that have a monthly budget",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		repo, err := load(cfg, logger)
		if err != nil {
			return err
		}
		for _, p := range repo.Periods() {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

var budgetsCmd = &cobra.Command{
	Use:   "budgets",
	Short: "List the budgets found under the YNAB root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		names, err := ynab4.NewConfigDir(afero.NewOsFs(), cfg.Root, logger).Budgets()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Preview the reports a YAML plan would produce",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		p, err := loadPlan(args[0], cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Plan preview for %s\n", args[0])
		p.Print(out)
		exec := executors.New(logger, executors.FSLoader{Fs: afero.NewOsFs(), Logger: logger}, cfg.Format)
		fmt.Fprintln(out, "Summary:")
		for _, run := range exec.Plan(p) {
			fmt.Fprintf(out, "  - %s %s as %s\n", run.Budget, run.Period, run.Format)
		}
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <plan_file>",
	Short: "Produce every report of a YAML plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		p, err := loadPlan(args[0], cfg)
		if err != nil {
			return err
		}
		exec := executors.New(logger, executors.FSLoader{Fs: afero.NewOsFs(), Logger: logger}, cfg.Format)
		return exec.Apply(p, cmd.OutOrStdout())
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "YNAB directory holding the *.ynab4 budgets")
	rootCmd.PersistentFlags().StringP("budget", "b", "My Budget", "Budget name")
	rootCmd.PersistentFlags().StringP("format", "f", "text", "Output format (text, json, yaml, csv, table)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	now := time.Now()
	for _, cmd := range []*cobra.Command{amountsCmd, inspectCmd} {
		cmd.Flags().Int("year", now.Year(), "Year")
		cmd.Flags().Int("month", int(now.Month()), "Month (1-12)")
	}
	categoriesCmd.Flags().String("flow", "", "Only inflow or outflow master categories")

	rootCmd.AddCommand(amountsCmd, categoriesCmd, monthsCmd, budgetsCmd, inspectCmd, planCmd, applyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}
