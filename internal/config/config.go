package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sheets    SheetsConfig    `yaml:"sheets" mapstructure:"sheets"`
	Report    ReportConfig    `yaml:"report" mapstructure:"report"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SheetsConfig holds the spreadsheet source settings. When Workbook is
// set, the local XLSX file is used instead of the Google Sheets API.
type SheetsConfig struct {
	SpreadsheetID       string  `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	ServiceAccountEmail string  `yaml:"service_account_email" mapstructure:"service_account_email"`
	PrivateKey          string  `yaml:"private_key" mapstructure:"private_key"`
	Workbook            string  `yaml:"workbook" mapstructure:"workbook"`
	RequestsPerSecond   float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ReportConfig configures the aggregation pipeline.
type ReportConfig struct {
	// Granularity is "monthly" or "biweekly".
	Granularity string `yaml:"granularity" mapstructure:"granularity"`
	// TableStrategy is "prose" or "columns".
	TableStrategy string `yaml:"table_strategy" mapstructure:"table_strategy"`
	// Year completes sheet dates that carry no year. 0 means the current
	// wall-clock year.
	Year int `yaml:"year" mapstructure:"year"`
	// PromoterRulesFile optionally overrides the built-in name
	// canonicalization rule table.
	PromoterRulesFile string `yaml:"promoter_rules_file" mapstructure:"promoter_rules_file"`
	// Diagnostics attaches skip counts to report output.
	Diagnostics bool `yaml:"diagnostics" mapstructure:"diagnostics"`
}

// AnthropicConfig holds Anthropic API settings for the chat endpoint.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ServerConfig configures the dashboard server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CLUBREPORTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("report.granularity", "biweekly")
	v.SetDefault("report.table_strategy", "prose")
	v.SetDefault("sheets.requests_per_second", 1.0)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the fields the given run mode needs. Modes: "report"
// runs the pipeline once, "ask" additionally calls the Anthropic API,
// "serve" hosts both behind the dashboard server.
func (c *Config) Validate(mode string) error {
	var problems []string

	if c.Sheets.Workbook == "" {
		if c.Sheets.SpreadsheetID == "" {
			problems = append(problems, "sheets.spreadsheet_id is required when sheets.workbook is unset")
		}
		if c.Sheets.ServiceAccountEmail == "" {
			problems = append(problems, "sheets.service_account_email is required when sheets.workbook is unset")
		}
		if c.Sheets.PrivateKey == "" {
			problems = append(problems, "sheets.private_key is required when sheets.workbook is unset")
		}
	}
	if g := c.Report.Granularity; g != "monthly" && g != "biweekly" {
		problems = append(problems, "report.granularity must be monthly or biweekly")
	}
	if s := c.Report.TableStrategy; s != "prose" && s != "columns" {
		problems = append(problems, "report.table_strategy must be prose or columns")
	}
	if c.Sheets.RequestsPerSecond <= 0 {
		problems = append(problems, "sheets.requests_per_second must be > 0")
	}

	switch mode {
	case "report":
	case "ask":
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
	case "serve":
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
