package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/yurifrl/pocketmoney/pkg/report"
	"github.com/yurifrl/pocketmoney/pkg/ynab4"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "pocketmoney",
	})

	var budgetName string
	flag.StringVar(&budgetName, "b", "My Budget", "Budget name")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		logger.Error("invalid usage", "args", args)
		fmt.Fprintf(os.Stderr, "Usage: pocketmoney [-b budget] <ynab_directory>\n")
		os.Exit(1)
	}

	dir, err := ynab4.NewConfigDir(afero.NewOsFs(), args[0], logger).Open(budgetName)
	if err != nil {
		logger.Fatal("budget not found", "error", err)
	}
	repo, err := dir.Load()
	if err != nil {
		logger.Fatal("loading failed", "error", err)
	}

	now := time.Now()
	amounts := repo.CategoryAmounts(now.Year(), int(now.Month()))
	if err := report.WriteText(os.Stdout, report.New(amounts, repo)); err != nil {
		logger.Fatal("writing report failed", "error", err)
	}
}
