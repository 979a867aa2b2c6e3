package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	EnvPrefix     = "TSS"
	EnvConfigFile = "TSS_CONFIG_FILE"

	SourcePostgres = "postgres"
	SourceFile     = "file"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Source   SourceConfig   `yaml:"source" envconfig:"SOURCE"`
	Postgres PostgresConfig `yaml:"postgres" envconfig:"POSTGRES"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Series   SeriesConfig   `yaml:"series" envconfig:"SERIES"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" envconfig:"ADDR" default:":8080" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"5s" validate:"gt=0"`
}

// SourceConfig selects where weekly recaps are read from.
type SourceConfig struct {
	Kind  string `yaml:"kind" envconfig:"KIND" default:"postgres" validate:"oneof=postgres file"`
	File  string `yaml:"file" envconfig:"FILE"`
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

type PostgresConfig struct {
	DSN             string        `yaml:"dsn" envconfig:"DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"MAX_OPEN_CONNS" default:"20" validate:"gte=1"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS" default:"10" validate:"gte=0"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME" default:"30m"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"console" validate:"oneof=console json"`
}

type SeriesConfig struct {
	DefaultWindow int   `yaml:"default_window" envconfig:"DEFAULT_WINDOW" default:"30" validate:"gte=1"`
	MaxWindow     int   `yaml:"max_window" envconfig:"MAX_WINDOW" default:"100" validate:"gte=1,gtefield=DefaultWindow"`
	DefaultCodes  []int `yaml:"default_codes" envconfig:"DEFAULT_CODES" default:"1,2" validate:"min=1"`
}

// Load reads the environment (prefix TSS) and overlays the YAML file named
// by TSS_CONFIG_FILE when it is set.
//
// Precedence, lowest first: struct defaults, environment, file. A key present
// in the file wins over the same TSS_ variable; keys the file omits keep their
// environment or default value.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch c.Source.Kind {
	case SourcePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("%w: postgres.dsn is required for the postgres source", ErrInvalidConfig)
		}
	case SourceFile:
		if c.Source.File == "" {
			return fmt.Errorf("%w: source.file is required for the file source", ErrInvalidConfig)
		}
	}

	return nil
}
