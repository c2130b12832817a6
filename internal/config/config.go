package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config global configuration, mirrors config/config.yaml
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // HTTP API
	Database DatabaseConfig `mapstructure:"database"` // run ledger + relational graph backend
	Sources  SourcesConfig  `mapstructure:"sources"`  // score sheet / alias directories
	Graph    GraphConfig    `mapstructure:"graph"`    // downstream graph store
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug/release/test
}

// DatabaseConfig relational database settings. An empty DSN disables the run ledger.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres/sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogSQL          bool          `mapstructure:"log_sql"`
}

// SourcesConfig where score sheets and alias files are read from
type SourcesConfig struct {
	ScoresDir   string `mapstructure:"scores_dir"`
	AliasesDir  string `mapstructure:"aliases_dir"`
	Concurrency int    `mapstructure:"concurrency"` // per-loader file parsing workers
	Strategy    string `mapstructure:"strategy"`    // file/row
}

// GraphConfig graph store backend settings
type GraphConfig struct {
	Backend  string `mapstructure:"backend"`  // helix/neo4j/relational
	BaseURL  string `mapstructure:"base_url"` // helix query endpoint
	Timeout  int    `mapstructure:"timeout"`  // seconds
	Proxy    string `mapstructure:"proxy"`
	URI      string `mapstructure:"uri"` // neo4j bolt uri
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"` // neo4j database name
	MaxPool  int    `mapstructure:"max_pool"`
}

// LogConfig logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text/json
}

// LoadConfig loads the yaml config at path (default ./config/config.yaml). Values from
// .env and the process environment take precedence over the file.
func LoadConfig(path string) (*Config, error) {
	// 1. .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// 2. config file
	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
	} else {
		v.SetConfigFile(path)
		if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
			v.SetConfigType(ext)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// 3. env > yaml
	overrideFromEnv(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("sources.scores_dir", "./data/scores")
	v.SetDefault("sources.aliases_dir", "./data/aliases")
	v.SetDefault("sources.concurrency", 4)
	v.SetDefault("sources.strategy", "file")
	v.SetDefault("graph.backend", "helix")
	v.SetDefault("graph.base_url", "http://localhost:6969")
	v.SetDefault("graph.timeout", 10)
	v.SetDefault("graph.user", "neo4j")
	v.SetDefault("graph.max_pool", 50)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// overrideFromEnv secrets and deployment paths come from the environment
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("SCORES_DIR"); v != "" {
		cfg.Sources.ScoresDir = v
	}
	if v := os.Getenv("ALIASES_DIR"); v != "" {
		cfg.Sources.AliasesDir = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("GRAPH_BACKEND"); v != "" {
		cfg.Graph.Backend = v
	}
	if v := os.Getenv("HELIX_URL"); v != "" {
		cfg.Graph.BaseURL = v
	}
	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.Graph.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		cfg.Graph.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		cfg.Graph.Password = v
	}
}
