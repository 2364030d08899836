package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/domeballhq/match-engine/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
server:
  host: 0.0.0.0
  port: 18080
  shutdown_timeout: 10

logger:
  level: info
  format: json
  env: prod

engine:
  ticks_per_minute: 6
  sub_stamina_floor: 50
  base_injury_rate: 0.02

postgres:
  host: 127.0.0.1
  port: 5432
  user: fileuser
  password: filepass
  dbname: filedb
  sslmode: disable
  max_conns: 5
  min_conns: 1
  max_conn_lifetime: 60
  max_conn_idle_time: 30
  health_check_period: 15
`
	path := writeTempConfig(t, yaml)

	// Secrets come from ENV using the canonical APP_* names.
	t.Setenv("APP_POSTGRES_USER", "envuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "envpass")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 18080 {
		t.Fatalf("expected server.port 18080, got %d", cfg.Server.Port)
	}
	if cfg.Postgres.User != "envuser" || cfg.Postgres.Password != "envpass" {
		t.Fatalf("env overrides not applied: got user=%q pass=%q", cfg.Postgres.User, cfg.Postgres.Password)
	}
	if cfg.Postgres.Host != "127.0.0.1" || cfg.Postgres.Port != 5432 || cfg.Postgres.SSLMode != "disable" {
		t.Fatalf("yaml values not loaded as expected: host=%q port=%d sslmode=%q", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.SSLMode)
	}
	if cfg.Engine.TicksPerMinute != 6 || cfg.Engine.SubStaminaFloor != 50 {
		t.Fatalf("engine tuning not loaded: %+v", cfg.Engine)
	}
}

func TestConfigLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing config file, got nil")
	}
}
