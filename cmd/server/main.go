package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"

	"github.com/yurifrl/pocketmoney/pkg/config"
	"github.com/yurifrl/pocketmoney/pkg/server"
	"github.com/yurifrl/pocketmoney/pkg/ynab4"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "pocketmoney-server",
	})

	cfgFile := flag.StringP("config", "c", "", "Config file")
	flag.String("port", "3000", "Server port")
	flag.String("root", "", "YNAB directory holding the *.ynab4 budgets")
	flag.StringP("budget", "b", "My Budget", "Budget name")
	flag.String("log-level", "info", "Log level")
	flag.Parse()

	cfg, err := config.Build(*cfgFile, flag.CommandLine)
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	logger.SetLevel(cfg.Level())

	dir, err := ynab4.NewConfigDir(afero.NewOsFs(), cfg.Root, logger).Open(cfg.Budget)
	if err != nil {
		logger.Fatal("budget not found", "root", cfg.Root, "budget", cfg.Budget, "err", err)
	}
	repo, err := dir.Load()
	if err != nil {
		logger.Fatal("failed to load budget", "err", err)
	}

	srv := server.New(repo, logger)
	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	logger.Info("starting server", "addr", addr, "budget", cfg.Budget)
	if err := srv.Start(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
