package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const envPrefix = "POCKETMONEY"

// Formats accepted by the report writers.
var Formats = []string{"text", "json", "yaml", "csv", "table"}

type Config struct {
	Root     string `mapstructure:"root"`
	Budget   string `mapstructure:"budget"`
	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log_level"`
	Port     string `mapstructure:"port"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"root":      "root",
	"budget":    "budget",
	"format":    "format",
	"log-level": "log_level",
	"port":      "port",
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Root:     defaultRoot(),
		Budget:   "My Budget",
		Format:   "text",
		LogLevel: "info",
		Port:     "3000",
	}
}

func defaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Dropbox", "YNAB")
	}
	return filepath.Join(home, "Dropbox", "YNAB")
}

// Build merges, from lowest to highest precedence, defaults, the config
// file, a .env file, POCKETMONEY_* environment variables and flags.
// cfgFile may be empty, in which case config.yaml is looked up in the
// working directory and in $HOME/.config/pocketmoney. flags may be nil.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	def := Default()
	v.SetDefault("root", def.Root)
	v.SetDefault("budget", def.Budget)
	v.SetDefault("format", def.Format)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("port", def.Port)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pocketmoney"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Root = expandHome(cfg.Root)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have a closed set of choices.
func (c *Config) Validate() error {
	var problems []string
	if !validFormat(c.Format) {
		problems = append(problems, fmt.Sprintf("invalid format %q: must be one of %s", c.Format, strings.Join(Formats, ", ")))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.LogLevel))
	}
	if c.Budget == "" {
		problems = append(problems, "budget name is empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Level returns the parsed log level, info when it cannot be parsed.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := gotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
