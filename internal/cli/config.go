package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/syntower/pkg/core/synteny/palette"
	"github.com/matzehuels/syntower/pkg/core/view"
)

// Backend names for [CacheConfig] and [StoreConfig].
const (
	backendFile   = "file"
	backendRedis  = "redis"
	backendNone   = "none"
	backendMemory = "memory"
	backendMongo  = "mongo"
)

// envPrefix prefixes every environment override.
const envPrefix = "SYNTOWER_"

// Config is the on-disk configuration (config.toml).
type Config struct {
	Palette palette.Palette `toml:"palette"`
	Filter  view.Filter     `toml:"filter"`
	Render  RenderConfig    `toml:"render"`
	Cache   CacheConfig     `toml:"cache"`
	Store   StoreConfig     `toml:"store"`
	Server  ServerConfig    `toml:"server"`
}

// RenderConfig holds render defaults. Zero values fall back to the
// pipeline defaults.
type RenderConfig struct {
	Formats   []string `toml:"formats"`
	RowHeight float64  `toml:"row_height"`
	Spacing   float64  `toml:"spacing"`
	Scale     float64  `toml:"scale"`
	Detailed  bool     `toml:"detailed"`
}

// CacheConfig selects the artifact cache.
type CacheConfig struct {
	Backend       string `toml:"backend"` // file, redis or none
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// StoreConfig selects the graph record store.
type StoreConfig struct {
	Backend    string `toml:"backend"` // memory, file or mongo
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures `syntower serve`.
type ServerConfig struct {
	Addr     string        `toml:"addr"`
	Timeout  time.Duration `toml:"timeout"`
	MaxBody  int64         `toml:"max_body"`
	NoRemote bool          `toml:"no_remote"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Palette: palette.Default(),
		Filter:  view.DefaultFilter(),
		Cache:   CacheConfig{Backend: backendFile, Prefix: appName + ":"},
		Store:   StoreConfig{Backend: backendFile},
		Server:  ServerConfig{Addr: ":8080"},
	}
}

// Validate checks backend names and nested sections.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return fmt.Errorf("cache.backend: unknown backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case backendMemory, backendFile, backendMongo:
	default:
		return fmt.Errorf("store.backend: unknown backend %q (want memory, file or mongo)", c.Store.Backend)
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr is required for the redis backend")
	}
	if c.Store.Backend == backendMongo && c.Store.MongoURI == "" {
		return fmt.Errorf("store.mongo_uri is required for the mongo backend")
	}
	if err := c.Palette.Validate(); err != nil {
		return fmt.Errorf("palette: %w", err)
	}
	if err := c.Filter.Validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return nil
}

// LoadConfig reads .env from the working directory (if present), then the
// TOML file at path, then applies SYNTOWER_* overrides. A missing file at
// the default path is not an error; a missing explicit path is.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return cfg, applyEnv(&cfg)
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides cfg with SYNTOWER_* environment variables.
func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"CACHE_BACKEND":    &cfg.Cache.Backend,
		"CACHE_DIR":        &cfg.Cache.Dir,
		"REDIS_ADDR":       &cfg.Cache.RedisAddr,
		"REDIS_PASSWORD":   &cfg.Cache.RedisPassword,
		"STORE_BACKEND":    &cfg.Store.Backend,
		"STORE_DIR":        &cfg.Store.Dir,
		"MONGO_URI":        &cfg.Store.MongoURI,
		"MONGO_DATABASE":   &cfg.Store.Database,
		"MONGO_COLLECTION": &cfg.Store.Collection,
		"ADDR":             &cfg.Server.Addr,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", envPrefix, err)
		}
		cfg.Cache.RedisDB = n
	}
	if v, ok := os.LookupEnv(envPrefix + "CUTOFF"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sCUTOFF: %w", envPrefix, err)
		}
		cfg.Filter.Cutoff = f
	}
	if v, ok := os.LookupEnv(envPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.Server.Timeout = d
	}
	if v, ok := os.LookupEnv(envPrefix + "COLORS"); ok {
		cfg.Palette.Colors = strings.Split(v, ",")
	}
	return nil
}

// configPath returns $XDG_CONFIG_HOME/syntower/config.toml.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func configDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
