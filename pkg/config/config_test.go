package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	flags.String("budget", "My Budget", "")
	flags.String("format", "text", "")
	flags.String("log-level", "info", "")
	return flags
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestBuildPrecedence(t *testing.T) {
	path := writeConfig(t, "root: /from/file\nbudget: File Budget\nformat: json\nlog_level: debug\n")

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := Build(path, nil)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if cfg.Root != "/from/file" || cfg.Budget != "File Budget" || cfg.Format != "json" || cfg.Level() != log.DebugLevel {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Port != "3000" {
			t.Errorf("Port = %q, want default 3000", cfg.Port)
		}
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("POCKETMONEY_BUDGET", "Env Budget")
		cfg, err := Build(path, nil)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if cfg.Budget != "Env Budget" {
			t.Errorf("Budget = %q, want Env Budget", cfg.Budget)
		}
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("POCKETMONEY_FORMAT", "csv")
		flags := newFlags()
		if err := flags.Parse([]string{"--format", "table", "--log-level", "warn"}); err != nil {
			t.Fatal(err)
		}
		cfg, err := Build(path, flags)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if cfg.Format != "table" || cfg.Level() != log.WarnLevel {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Budget != "File Budget" {
			t.Errorf("unset flag overrode the file: Budget = %q", cfg.Budget)
		}
	})
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("Build with a missing explicit config file should fail")
	}
	path := writeConfig(t, "format: xml\n")
	_, err := Build(path, nil)
	if err == nil || !strings.Contains(err.Error(), "invalid format") {
		t.Errorf("Build error = %v, want invalid format", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad format", func(c *Config) { c.Format = "pdf" }, "invalid format"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"empty budget", func(c *Config) { c.Budget = "" }, "budget name is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/Dropbox/YNAB"); got != filepath.Join(home, "Dropbox", "YNAB") {
		t.Errorf("expandHome = %s", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome(/abs) = %s", got)
	}
}
