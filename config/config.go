package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is loaded once at startup. Required settings are validated here so the
// process refuses to start with missing credentials instead of running with
// empty ones.
type Config struct {
	Port string

	SQL SQLConfig
	LLM LLMConfig

	AccessSecret string

	UploadDir string

	SMTP SMTPConfig
}

type SQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c SQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// SMTPConfig is optional; the daily report is skipped when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	ReportTo string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.ReportTo != ""
}

func Load() (Config, error) {
	cfg := Config{
		Port: getenvDefault("PORT", "8080"),
		SQL: SQLConfig{
			Host:     os.Getenv("SQL_HOST"),
			Port:     getenvDefault("SQL_PORT", "3306"),
			User:     os.Getenv("SQL_USER"),
			Password: os.Getenv("SQL_PASSWORD"),
			DBName:   getenvDefault("SQL_DBNAME", "stunting"),
		},
		LLM: LLMConfig{
			BaseURL: os.Getenv("LLM_BASE_URL"),
			APIKey:  os.Getenv("LLM_API_KEY"),
			Model:   getenvDefault("LLM_MODEL", "qwen-turbo"),
			Timeout: 30 * time.Second,
		},
		AccessSecret: os.Getenv("ACCESS_SECRET"),
		UploadDir:    getenvDefault("UPLOAD_DIR", "./uploads"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     587,
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			ReportTo: os.Getenv("REPORT_TO"),
		},
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = n
		}
	}
	if v := os.Getenv("LLM_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LLM.Timeout = time.Duration(n) * time.Second
		}
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	missing := []string{}
	if c.SQL.Host == "" {
		missing = append(missing, "SQL_HOST")
	}
	if c.SQL.User == "" {
		missing = append(missing, "SQL_USER")
	}
	if c.LLM.APIKey == "" {
		missing = append(missing, "LLM_API_KEY")
	}
	if c.AccessSecret == "" {
		missing = append(missing, "ACCESS_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
