package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/vaultsync/pkg/constants"
)

// Config is the application configuration assembled from flags, environment
// variables, .env files, and an optional ~/.vaultsync.yaml.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Path of the config file actually read, if any.
	ConfigFile string

	// Vault CLI configuration
	LastPassCLI  string
	BitwardenCLI string
	TempDir      string
	DryRun       bool
	Timeout      time.Duration

	// Logging configuration. LogLevel stays empty unless set explicitly,
	// so the -v/-q shortcuts in NewLogger can still apply.
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Environment variables that override vault CLI settings. Session
// variables such as BW_SESSION and LPASS_AGENT_TIMEOUT belong to the
// CLIs themselves and are deliberately not read here.
var envOverrides = [][2]string{
	{"lastpass_cli", "LASTPASS_CLI"},
	{"bitwarden_cli", "BITWARDEN_CLI"},
	{"temp_dir", "TEMP_DIR"},
	{"dry_run", "DRY_RUN"},
	{"timeout", "TIMEOUT"},
}

// LoadConfig assembles the configuration. Precedence, highest first:
// command-line flags (applied later via UpdateFromFlags), environment
// variables, .env files, the config file, built-in defaults.
func LoadConfig() (*Config, error) {
	// .env files must land in the environment before viper binds it.
	// .env.local loads second so it overrides .env.
	for _, name := range []string{".env", ".env.local"} {
		_ = godotenv.Load(name)
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, pair := range envOverrides {
		if err := viper.BindEnv(pair[0], pair[1]); err != nil {
			// Not fatal; the setting just loses its env override.
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", pair[1], err)
		}
	}

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vaultsync")
	}

	// A missing config file is fine; every setting has a default.
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),

		ConfigFile: viper.ConfigFileUsed(),

		LastPassCLI:  viper.GetString("lastpass_cli"),
		BitwardenCLI: viper.GetString("bitwarden_cli"),
		TempDir:      viper.GetString("temp_dir"),
		DryRun:       viper.GetBool("dry_run"),
		Timeout:      viper.GetDuration("timeout"),

		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: envOr("LOG_FORMAT", "auto"),
		LogOutput: envOr("LOG_OUTPUT", "stderr"),
	}

	if config.Timeout == 0 {
		config.Timeout = constants.DefaultSyncTimeout
	}

	return config, nil
}

// UpdateFromFlags overlays parsed command-line flags onto the configuration,
// giving flags the final say over file and environment values.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// envOr returns the named environment variable, or fallback when unset.
func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
