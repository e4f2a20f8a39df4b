package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Output formats for list commands.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config represents the structure of the configuration file
type Config struct {
	Version        string `mapstructure:"version"`
	Theme          string `mapstructure:"theme"`
	APIURL         string `mapstructure:"api_url"`
	HomeDir        string `mapstructure:"home_dir"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	KBPullLimit    int    `mapstructure:"kb_pull_limit"`
	LogLevel       string `mapstructure:"log_level"`
	LogFile        string `mapstructure:"log_file"`
	Output         string `mapstructure:"output"`
	Debug          bool   `mapstructure:"debug"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:        "0.4.0",
	Theme:          "dracula",
	APIURL:         "https://api.solidnumber.com",
	TimeoutSeconds: 30,
	KBPullLimit:    500,
	LogLevel:       "info",
	Output:         OutputTable,
}

// Validate checks the values that the rest of the program relies on.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIURL, validation.Required, is.URL),
		validation.Field(&c.TimeoutSeconds, validation.Required, validation.Min(1)),
		validation.Field(&c.KBPullLimit, validation.Required, validation.Min(1)),
		validation.Field(&c.Output, validation.Required, validation.In(OutputTable, OutputJSON, OutputYAML)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// AuthFile is where the session token lives.
func (c *Config) AuthFile() string {
	return filepath.Join(c.HomeDir, "auth.json")
}

// LogPath returns the rotating log file location.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.HomeDir, "logs", "solid.log")
}

// LoadConfigs builds the configuration from defaults, an optional config file,
// SOLID_* environment variables and CLI flags, in that order of precedence.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)

	cfgFile, _ := rootCmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		// Look for solid-config.{yaml,yml,json} in the project directory.
		v.SetConfigName("solid-config")
		v.AddConfigPath(cwd)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	bindFlags(v, rootCmd)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		config.HomeDir = filepath.Join(home, ".solid")
	}
	config.APIURL = strings.TrimRight(config.APIURL, "/")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets all default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", DefaultConfig.Version)
	v.SetDefault("theme", DefaultConfig.Theme)
	v.SetDefault("api_url", DefaultConfig.APIURL)
	v.SetDefault("home_dir", DefaultConfig.HomeDir)
	v.SetDefault("timeout_seconds", DefaultConfig.TimeoutSeconds)
	v.SetDefault("kb_pull_limit", DefaultConfig.KBPullLimit)
	v.SetDefault("log_level", DefaultConfig.LogLevel)
	v.SetDefault("log_file", DefaultConfig.LogFile)
	v.SetDefault("output", DefaultConfig.Output)
	v.SetDefault("debug", DefaultConfig.Debug)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("theme", "SOLID_THEME")
	_ = v.BindEnv("api_url", "SOLID_API_URL")
	_ = v.BindEnv("home_dir", "SOLID_HOME")
	_ = v.BindEnv("timeout_seconds", "SOLID_TIMEOUT_SECONDS")
	_ = v.BindEnv("kb_pull_limit", "SOLID_KB_PULL_LIMIT")
	_ = v.BindEnv("log_level", "SOLID_LOG_LEVEL")
	_ = v.BindEnv("log_file", "SOLID_LOG_FILE")
	_ = v.BindEnv("output", "SOLID_OUTPUT")
	_ = v.BindEnv("debug", "SOLID_DEBUG")
}

// bindFlags binds the CLI flags to configuration values.
// Only flags the user actually set override file and env values.
func bindFlags(v *viper.Viper, rootCmd *cobra.Command) {
	for key, name := range map[string]string{
		"theme":     "theme",
		"api_url":   "api_url",
		"log_level": "log_level",
		"output":    "output",
		"debug":     "debug",
	} {
		if flag := rootCmd.Flags().Lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a configuration file (JSON or YAML). Defaults to solid-config.yaml in the working directory.")
	rootCmd.PersistentFlags().String("api_url", DefaultConfig.APIURL, "Base URL of the Solid API.")
	rootCmd.PersistentFlags().String("theme", DefaultConfig.Theme, "Highlight theme used when rendering agent answers (e.g., 'dracula', 'monokai').")
	rootCmd.PersistentFlags().String("log_level", DefaultConfig.LogLevel, "Log level: debug, info, warn or error.")
	rootCmd.PersistentFlags().StringP("output", "o", DefaultConfig.Output, "Output format for list commands: table, json or yaml.")
	rootCmd.PersistentFlags().Bool("debug", false, "Write logs to stderr instead of the log file.")
}
