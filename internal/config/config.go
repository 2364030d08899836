package config

import (
	"github.com/domeballhq/match-engine/internal/logger"
)

// Config is the full application configuration tree, loaded from YAML with
// APP_-prefixed environment overrides.
type Config struct {
	Server   ServerConfig        `mapstructure:"server"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Engine   EngineConfig        `mapstructure:"engine"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // seconds; SSE streams override this
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"dbname"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`   // seconds
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`  // seconds
	HealthCheckPeriod int    `mapstructure:"health_check_period"` // seconds
}

// EngineConfig exposes the handful of simulation knobs operators actually
// turn. Zero values fall back to the built-in defaults.
type EngineConfig struct {
	TicksPerMinute  int     `mapstructure:"ticks_per_minute"`
	SubStaminaFloor int     `mapstructure:"sub_stamina_floor"`
	BaseInjuryRate  float64 `mapstructure:"base_injury_rate"`
}
