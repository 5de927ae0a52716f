package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", Mode: ModeDebug},
		Database: DatabaseConfig{Driver: DriverSQLite},
	}
}

func TestValidateRejectsBypassInRelease(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Mode = ModeRelease
	cfg.JWT.Secret = strings.Repeat("s", 40)
	cfg.Courses.AvailabilityBypass = true

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected bypass to be rejected in release mode")
	}

	cfg.Courses.AvailabilityBypass = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateAllowsBypassInDebug(t *testing.T) {
	cfg := validConfig()
	cfg.Courses.AvailabilityBypass = true
	if err := cfg.Validate(); err != nil {
		t.Fatalf("bypass should be allowed outside release mode: %v", err)
	}
}

func TestValidateShortSecretInRelease(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Mode = ModeRelease
	cfg.JWT.Secret = "short"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected short secret to be rejected")
	}
}

func TestValidateUnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown driver to be rejected")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	uploads := filepath.Join(dir, "uploads")
	content := `
server:
  port: "9090"
  mode: debug
database:
  driver: sqlite
  sqlite_path: test.db
storage:
  type: local
  local_path: ` + uploads + `
courses:
  availability_bypass: true
scheduler:
  followup_max_retries: 7
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port: got=%q", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.SQLitePath != "test.db" {
		t.Fatalf("database: got=%+v", cfg.Database)
	}
	if !cfg.Courses.AvailabilityBypass {
		t.Fatalf("expected bypass flag to be read")
	}
	if cfg.Scheduler.FollowUpMaxRetries != 7 {
		t.Fatalf("followup retries: got=%d", cfg.Scheduler.FollowUpMaxRetries)
	}
	if cfg.Scheduler.AvailabilitySpec != "@every 1m" {
		t.Fatalf("default availability spec not applied: %q", cfg.Scheduler.AvailabilitySpec)
	}
	if _, err := os.Stat(uploads); err != nil {
		t.Fatalf("local storage dir not created: %v", err)
	}
}
