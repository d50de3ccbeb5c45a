package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Port                  string        `mapstructure:"port"`
	Store                 string        `mapstructure:"store"` // postgres, sqlite3, sheets or memory
	DatabaseURL           string        `mapstructure:"database_url"`
	SheetName             string        `mapstructure:"sheet_name"`
	SheetsSpreadsheetID   string        `mapstructure:"sheets_spreadsheet_id"`
	SheetsCredentialsFile string        `mapstructure:"sheets_credentials_file"`
	LogLevel              string        `mapstructure:"log_level"`
	LogFormat             string        `mapstructure:"log_format"`
	ShutdownTimeout       time.Duration `mapstructure:"shutdown_timeout"`
	Currency              string        `mapstructure:"currency"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("store", "memory")
	v.SetDefault("database_url", "")
	v.SetDefault("sheet_name", "holdings")
	v.SetDefault("sheets_spreadsheet_id", "")
	v.SetDefault("sheets_credentials_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("currency", "TRY")
}

// Load reads .env (if present), the optional config file and BUTCE_*
// environment variables, in increasing priority.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	// Load .env file if it exists, but don't fail if it's missing (e.g. in production)
	_ = godotenv.Load()

	setDefaults(v)
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}
	v.SetEnvPrefix("BUTCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("POSTGRES_URL")
	}
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BUTCE_PORT") == "" {
		cfg.Port = port
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case "memory":
	case "postgres", "sqlite3":
		if c.DatabaseURL == "" {
			return fmt.Errorf("store %s needs BUTCE_DATABASE_URL (or POSTGRES_URL)", c.Store)
		}
	case "sheets":
		if c.SheetsSpreadsheetID == "" || c.SheetsCredentialsFile == "" {
			return fmt.Errorf("store sheets needs BUTCE_SHEETS_SPREADSHEET_ID and BUTCE_SHEETS_CREDENTIALS_FILE")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}

// NewLogger builds the process logger from LogLevel and LogFormat.
func (c Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	level := logrus.InfoLevel
	if c.LogLevel != "" {
		var err error
		if level, err = logrus.ParseLevel(c.LogLevel); err != nil {
			logger.Warnf("unknown log level %q, using info", c.LogLevel)
			level = logrus.InfoLevel
		}
	}
	logger.SetLevel(level)
	if c.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
