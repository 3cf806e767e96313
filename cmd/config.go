package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk application configuration.
type Config struct {
	// DB is the path to the bbolt database file.
	DB string `yaml:"db"`
	// Currency is the default currency for new accounts and debts.
	Currency string `yaml:"currency"`
	// Statements maps an account id to the JSONPath of its balance inside
	// the bank statement export, used by the reconcile command.
	Statements map[string]string `yaml:"statements"`
}

const defaultConfigFile = "finance.yaml"

// LoadConfig reads the yaml config file and applies environment overrides.
// A .env file in the working directory is honored. A missing config file is
// not an error: defaults apply.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DB:       "finance.db",
		Currency: "CHF",
	}

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %q: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// fall through to defaults
	default:
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	if v := os.Getenv("FINANCE_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("FINANCE_CURRENCY"); v != "" {
		cfg.Currency = v
	}
	return cfg, nil
}
