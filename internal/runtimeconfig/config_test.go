package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-composer/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
	if cfg.Storage.Provider != runtimeconfig.StorageMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.Storage.Provider)
	}
	if !cfg.Features.SchemaValidation {
		t.Fatal("expected schema validation to be enabled by default")
	}
}

func TestConfigValidateStorage(t *testing.T) {
	cases := map[string]struct {
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		"unknown provider": {
			mutate: func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" },
			want:   runtimeconfig.ErrStorageProviderUnknown,
		},
		"unknown driver": {
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Provider = runtimeconfig.StorageBun
				c.Storage.Driver = "oracle"
			},
			want: runtimeconfig.ErrStorageDriverUnknown,
		},
		"postgres without dsn": {
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Provider = runtimeconfig.StorageBun
				c.Storage.Driver = runtimeconfig.DriverPostgres
			},
			want: runtimeconfig.ErrStorageDSNRequired,
		},
		"mongo without uri": {
			mutate: func(c *runtimeconfig.Config) { c.Storage.Provider = runtimeconfig.StorageMongo },
			want:   runtimeconfig.ErrMongoURIRequired,
		},
		"cache on memory": {
			mutate: func(c *runtimeconfig.Config) { c.Cache.Enabled = true },
			want:   runtimeconfig.ErrCacheRequiresBun,
		},
		"cache without ttl": {
			mutate: func(c *runtimeconfig.Config) {
				c.Storage.Provider = runtimeconfig.StorageBun
				c.Cache.Enabled = true
				c.Cache.DefaultTTL = 0
			},
			want: runtimeconfig.ErrCacheTTLInvalid,
		},
	}
	for name, tc := range cases {
		cfg := runtimeconfig.DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", name, tc.want, err)
		}
	}
}

func TestConfigValidateDragAndBlocks(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Drag.ImpactOffset = 0.5
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrImpactOffsetInvalid) {
		t.Fatalf("expected ErrImpactOffsetInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Drag.Axis = "z"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrDragAxisInvalid) {
		t.Fatalf("expected ErrDragAxisInvalid, got %v", err)
	}

	cfg = runtimeconfig.DefaultConfig()
	cfg.Blocks.Definitions = []runtimeconfig.BlockDefinitionConfig{{Name: "Banner"}}
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrBlockTypeRequired) {
		t.Fatalf("expected ErrBlockTypeRequired, got %v", err)
	}
}

func TestConfigValidateLogging(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.toml")
	contents := `
[storage]
provider = "bun"
driver = "sqlite"

[cache]
enabled = true
default_ttl = "5m"

[drag]
axis = "both"
strict_directions = true

[features]
logger = true

[logging]
level = "debug"
format = "console"

[[blocks.definitions]]
type = "banner"
name = "Banner"
global = true

[blocks.definitions.defaults]
text = "Free shipping"
`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Storage.Provider != "bun" || cfg.Storage.MongoCollection != "page_documents" {
		t.Fatalf("unexpected storage config %+v", cfg.Storage)
	}
	if !cfg.Cache.Enabled || cfg.Cache.DefaultTTL != 5*time.Minute {
		t.Fatalf("unexpected cache config %+v", cfg.Cache)
	}
	if cfg.Drag.Axis != "both" || !cfg.Drag.StrictDirections || cfg.Drag.ImpactOffset != 0.05 {
		t.Fatalf("unexpected drag config %+v", cfg.Drag)
	}
	if cfg.Logging.Provider != "gologger" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config %+v", cfg.Logging)
	}
	if len(cfg.Blocks.Definitions) != 1 || cfg.Blocks.Definitions[0].Defaults["text"] != "Free shipping" {
		t.Fatalf("unexpected block definitions %+v", cfg.Blocks.Definitions)
	}
}

func TestLoadFileRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "composer.toml")
	if err := os.WriteFile(path, []byte("[storage]\nprovider = \"mongo\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.LoadFile(path); !errors.Is(err, runtimeconfig.ErrMongoURIRequired) {
		t.Fatalf("expected ErrMongoURIRequired, got %v", err)
	}
}
