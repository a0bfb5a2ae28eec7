package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yurifrl/pocketmoney/pkg/budget"
	"github.com/yurifrl/pocketmoney/pkg/config"
	"github.com/yurifrl/pocketmoney/pkg/plan"
	"github.com/yurifrl/pocketmoney/pkg/ynab4"
)

// setup loads configuration (config file + flag overrides) and the logger.
func setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Build(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pocketmoney",
		Level:           cfg.Level(),
	})
	return cfg, logger, nil
}

func load(cfg *config.Config, logger *log.Logger) (*budget.Repository, error) {
	dir, err := ynab4.NewConfigDir(afero.NewOsFs(), cfg.Root, logger).Open(cfg.Budget)
	if err != nil {
		return nil, err
	}
	return dir.Load()
}

func loadPlan(path string, cfg *config.Config) (*plan.Plan, error) {
	p, err := plan.Load(path)
	if err != nil {
		return nil, err
	}
	if p.Root == "" {
		p.Root = cfg.Root
	}
	return p, nil
}

func period(cmd *cobra.Command) (int, int, error) {
	year, err := cmd.Flags().GetInt("year")
	if err != nil {
		return 0, 0, err
	}
	month, err := cmd.Flags().GetInt("month")
	if err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	return year, month, nil
}

// describe tells the user which kind of load failure happened.
func describe(err error) string {
	switch {
	case errors.Is(err, budget.ErrNotFound):
		return "no budget available: " + err.Error()
	case errors.Is(err, budget.ErrInvalidDocument):
		return "budget file is not readable JSON: " + err.Error()
	case errors.Is(err, budget.ErrMalformedRecord):
		return "budget file is malformed: " + err.Error()
	default:
		return err.Error()
	}
}
