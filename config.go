package composer

import "github.com/goliatone/go-composer/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrMongoURIRequired        = runtimeconfig.ErrMongoURIRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRequiresBun        = runtimeconfig.ErrCacheRequiresBun
	ErrImpactOffsetInvalid     = runtimeconfig.ErrImpactOffsetInvalid
	ErrDragAxisInvalid         = runtimeconfig.ErrDragAxisInvalid
	ErrBlockTypeRequired       = runtimeconfig.ErrBlockTypeRequired
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config                = runtimeconfig.Config
	StorageConfig         = runtimeconfig.StorageConfig
	CacheConfig           = runtimeconfig.CacheConfig
	DragConfig            = runtimeconfig.DragConfig
	BlocksConfig          = runtimeconfig.BlocksConfig
	BlockDefinitionConfig = runtimeconfig.BlockDefinitionConfig
	Features              = runtimeconfig.Features
	LoggingConfig         = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
