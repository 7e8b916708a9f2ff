package config

import "testing"

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RABBITMQ_URL", "amqp://localhost")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is missing")
	}
}

func TestLoad_RequiresRabbitMQURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flowday")
	t.Setenv("RABBITMQ_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when RABBITMQ_URL is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flowday")
	t.Setenv("RABBITMQ_URL", "amqp://localhost")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SESSION_HISTORY_LIMIT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.ServerPort)
	}
	if cfg.SessionLimit != 100 {
		t.Errorf("expected default session limit 100, got %d", cfg.SessionLimit)
	}
	if cfg.OIDCProvider != "cognito" {
		t.Errorf("expected default provider cognito, got %s", cfg.OIDCProvider)
	}
}

func TestLoad_InvalidSessionLimitFallsBack(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flowday")
	t.Setenv("RABBITMQ_URL", "amqp://localhost")
	t.Setenv("SESSION_HISTORY_LIMIT", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionLimit != 100 {
		t.Errorf("expected non-positive limit replaced with 100, got %d", cfg.SessionLimit)
	}
}

func TestLoad_BoolParsing(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/flowday")
	t.Setenv("RABBITMQ_URL", "amqp://localhost")
	t.Setenv("OTEL_ENABLED", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.OTELEnabled {
		t.Error("expected OTEL_ENABLED=yes to parse as true")
	}
}
