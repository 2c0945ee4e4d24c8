package config

import (
	"os"
	"testing"
)

func clearRequired() {
	for _, k := range []string{"SQL_HOST", "SQL_USER", "LLM_API_KEY", "ACCESS_SECRET"} {
		os.Unsetenv(k)
	}
}

func TestLoadFailsFastOnMissingSettings(t *testing.T) {
	clearRequired()
	if _, err := Load(); err == nil {
		t.Fatalf("expected Load to fail without required settings")
	}
}

func TestLoadWithRequiredSettings(t *testing.T) {
	clearRequired()
	t.Setenv("SQL_HOST", "127.0.0.1")
	t.Setenv("SQL_USER", "app")
	t.Setenv("SQL_PASSWORD", "apppass")
	t.Setenv("SQL_DBNAME", "stunting")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("ACCESS_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SQL.DSN() != "app:apppass@tcp(127.0.0.1:3306)/stunting?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Fatalf("unexpected dsn: %q", cfg.SQL.DSN())
	}
	if cfg.LLM.Model != "qwen-turbo" {
		t.Fatalf("unexpected default model: %q", cfg.LLM.Model)
	}
	if cfg.SMTP.Enabled() {
		t.Fatalf("smtp should be disabled without host and recipient")
	}
}

func TestSMTPEnabled(t *testing.T) {
	c := SMTPConfig{Host: "smtp.example.com", ReportTo: "ops@example.com"}
	if !c.Enabled() {
		t.Fatalf("expected enabled")
	}
	if (SMTPConfig{Host: "smtp.example.com"}).Enabled() {
		t.Fatalf("expected disabled without recipient")
	}
}
