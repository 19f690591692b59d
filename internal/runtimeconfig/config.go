package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	ErrStorageProviderUnknown  = errors.New("composer config: storage provider is invalid")
	ErrStorageDriverUnknown    = errors.New("composer config: storage driver is invalid")
	ErrStorageDSNRequired      = errors.New("composer config: storage dsn is required for postgres")
	ErrMongoURIRequired        = errors.New("composer config: mongo uri is required when the mongo provider is selected")
	ErrCacheTTLInvalid         = errors.New("composer config: cache ttl must be positive when cache is enabled")
	ErrCacheRequiresBun        = errors.New("composer config: cache is only supported by the bun storage provider")
	ErrImpactOffsetInvalid     = errors.New("composer config: drag impact offset must be within [0, 0.5)")
	ErrDragAxisInvalid         = errors.New("composer config: drag axis is invalid")
	ErrBlockTypeRequired       = errors.New("composer config: block definition type is required")
	ErrLoggingProviderRequired = errors.New("composer config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown  = errors.New("composer config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("composer config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("composer config: logging format is invalid")
)

const (
	StorageMemory = "memory"
	StorageBun    = "bun"
	StorageMongo  = "mongo"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config aggregates storage, drag and block settings for the composer module.
type Config struct {
	Storage  StorageConfig `toml:"storage"`
	Cache    CacheConfig   `toml:"cache"`
	Drag     DragConfig    `toml:"drag"`
	Blocks   BlocksConfig  `toml:"blocks"`
	Features Features      `toml:"features"`
	Logging  LoggingConfig `toml:"logging"`
}

// StorageConfig selects the page store backend.
type StorageConfig struct {
	Provider        string `toml:"provider"`
	Driver          string `toml:"driver"`
	DSN             string `toml:"dsn"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool          `toml:"enabled"`
	DefaultTTL time.Duration `toml:"default_ttl"`
}

// DragConfig tunes the drop-zone resolution of editor sessions.
type DragConfig struct {
	Axis             string  `toml:"axis"`
	ImpactOffset     float64 `toml:"impact_offset"`
	StrictDirections bool    `toml:"strict_directions"`
}

// BlocksConfig registers block types next to the built-in ones.
type BlocksConfig struct {
	Definitions []BlockDefinitionConfig `toml:"definitions"`
}

// BlockDefinitionConfig describes a host-provided block type.
type BlockDefinitionConfig struct {
	Type              string         `toml:"type"`
	Name              string         `toml:"name"`
	DefaultVariant    string         `toml:"default_variant"`
	VariantsSupported bool           `toml:"variants_supported"`
	Global            bool           `toml:"global"`
	Defaults          map[string]any `toml:"defaults"`
	Schema            map[string]any `toml:"schema"`
}

// Features toggles module functionality.
type Features struct {
	Logger           bool `toml:"logger"`
	SchemaValidation bool `toml:"schema_validation"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `toml:"provider"`
	Level     string   `toml:"level"`
	Format    string   `toml:"format"`
	AddSource bool     `toml:"add_source"`
	Focus     []string `toml:"focus"`
}

// DefaultConfig returns an in-memory setup with schema validation on and
// logging off.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider:        StorageMemory,
			Driver:          DriverSQLite,
			MongoDatabase:   "composer",
			MongoCollection: "page_documents",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Drag: DragConfig{
			Axis:         "y",
			ImpactOffset: 0.05,
		},
		Features: Features{
			SchemaValidation: true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// LoadFile overlays the TOML file at path on DefaultConfig and validates
// the result.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("composer config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("composer config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	provider := normalize(cfg.Storage.Provider)
	switch provider {
	case StorageMemory:
	case StorageBun:
		switch normalize(cfg.Storage.Driver) {
		case DriverSQLite:
		case DriverPostgres:
			if strings.TrimSpace(cfg.Storage.DSN) == "" {
				return ErrStorageDSNRequired
			}
		default:
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
	case StorageMongo:
		if strings.TrimSpace(cfg.Storage.MongoURI) == "" {
			return ErrMongoURIRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled {
		if provider != StorageBun {
			return ErrCacheRequiresBun
		}
		if cfg.Cache.DefaultTTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}

	if cfg.Drag.ImpactOffset < 0 || cfg.Drag.ImpactOffset >= 0.5 {
		return fmt.Errorf("%w: %v", ErrImpactOffsetInvalid, cfg.Drag.ImpactOffset)
	}
	switch normalize(cfg.Drag.Axis) {
	case "", "x", "y", "both":
	default:
		return fmt.Errorf("%w: %s", ErrDragAxisInvalid, cfg.Drag.Axis)
	}

	for idx, def := range cfg.Blocks.Definitions {
		if strings.TrimSpace(def.Type) == "" {
			return fmt.Errorf("%w: definition %d", ErrBlockTypeRequired, idx)
		}
	}

	if cfg.Features.Logger {
		logProvider := normalize(cfg.Logging.Provider)
		if logProvider == "" {
			return ErrLoggingProviderRequired
		}
		if logProvider != "gologger" {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, logProvider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
