package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/goliatone/go-composer/blocks"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/logging/gologger"
	"github.com/goliatone/go-composer/internal/pages"
	"github.com/goliatone/go-composer/internal/runtimeconfig"
	"github.com/goliatone/go-composer/internal/variants"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

const (
	defaultSQLiteDSN = "file:composer?mode=memory&cache=shared"
	setupTimeout     = 30 * time.Second
)

// Container wires the page store, block registry, page service and editor
// sessions from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	mongoClient   *mongo.Client
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	store    pages.Store
	registry *variants.Registry
	pageSvc  pages.Service
	ids      pages.IDGenerator
	clock    func() time.Time

	sessionsMu sync.Mutex
	sessions   map[string]*sessionEntry
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithBunDB supplies the database used by the bun store. The container
// does not close it.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		if db != nil {
			c.bunDB = db
		}
	}
}

// WithCache overrides the cache service used by the bun store.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPageStore bypasses the configured storage provider.
func WithPageStore(store pages.Store) Option {
	return func(c *Container) {
		if store != nil {
			c.store = store
		}
	}
}

// WithPageService overrides the page service.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		if svc != nil {
			c.pageSvc = svc
		}
	}
}

// WithBlockRegistry overrides the registry built from the built-ins and
// Config.Blocks.
func WithBlockRegistry(registry *variants.Registry) Option {
	return func(c *Container) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithIDGenerator overrides the synthetic id generator.
func WithIDGenerator(ids pages.IDGenerator) Option {
	return func(c *Container) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithClock overrides the clock used by services and sessions.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer validates cfg and builds every dependency.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		clock:    time.Now,
		sessions: make(map[string]*sessionEntry),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := c.configureStorage(ctx); err != nil {
		_ = c.Close(context.Background())
		return nil, err
	}
	if err := c.configureRegistry(); err != nil {
		_ = c.Close(context.Background())
		return nil, err
	}
	c.configureServices()
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			logging.ModuleLogger(c.loggerProvider, "composer.di").Warn("di.cache_unavailable", "error", err)
		} else {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage(ctx context.Context) error {
	if c.store != nil {
		return nil
	}

	storage := c.Config.Storage
	switch strings.ToLower(strings.TrimSpace(storage.Provider)) {
	case runtimeconfig.StorageBun:
		if c.bunDB == nil {
			db, err := openBunDB(storage)
			if err != nil {
				return err
			}
			c.bunDB = db
			c.ownsDB = true
		}
		store := pages.NewBunStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
		if err := store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("di: ensure page schema: %w", err)
		}
		c.store = store
	case runtimeconfig.StorageMongo:
		store, client, err := pages.ConnectMongoStore(storage.MongoURI, storage.MongoDatabase, storage.MongoCollection)
		if err != nil {
			return err
		}
		c.mongoClient = client
		if err := store.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("di: ensure page indexes: %w", err)
		}
		c.store = store
	default:
		c.store = pages.NewMemoryStore()
	}
	return nil
}

func openBunDB(storage runtimeconfig.StorageConfig) (*bun.DB, error) {
	dsn := strings.TrimSpace(storage.DSN)
	switch strings.ToLower(strings.TrimSpace(storage.Driver)) {
	case runtimeconfig.DriverPostgres:
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open postgres: %w", err)
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("di: open sqlite: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	}
}

func (c *Container) configureRegistry() error {
	if c.registry != nil {
		return nil
	}
	registry, err := variants.NewBuiltinRegistry(
		variants.WithSchemaValidation(c.Config.Features.SchemaValidation),
		variants.WithRegistryLogger(logging.VariantsLogger(c.loggerProvider)),
	)
	if err != nil {
		return err
	}
	for _, def := range c.Config.Blocks.Definitions {
		if err := registry.Register(descriptorFromConfig(def)); err != nil {
			return fmt.Errorf("di: register block %q: %w", def.Type, err)
		}
	}
	c.registry = registry
	return nil
}

func descriptorFromConfig(def runtimeconfig.BlockDefinitionConfig) variants.BlockTypeDescriptor {
	defaults := blocks.CloneData(def.Defaults)
	name := strings.TrimSpace(def.Name)
	if name == "" {
		name = def.Type
	}
	return variants.BlockTypeDescriptor{
		Type:              def.Type,
		Name:              name,
		DefaultVariant:    def.DefaultVariant,
		VariantsSupported: def.VariantsSupported,
		Global:            def.Global,
		Schema:            def.Schema,
		DefaultPayload: func() blocks.Data {
			if defaults == nil {
				return blocks.Data{}
			}
			return blocks.CloneData(defaults)
		},
	}
}

func (c *Container) configureServices() {
	if c.ids == nil {
		c.ids = pages.NewSyntheticIDs()
	}
	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(c.store,
			pages.WithClock(c.clock),
			pages.WithIDGenerator(c.ids),
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
			pages.WithBlockRegistry(c.registry),
		)
	}
}

// LoggerProvider returns the configured provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// PageStore returns the configured page store.
func (c *Container) PageStore() pages.Store { return c.store }

// PageService returns the page definition service.
func (c *Container) PageService() pages.Service { return c.pageSvc }

// BlockRegistry returns the block type registry shared by new sessions.
func (c *Container) BlockRegistry() *variants.Registry { return c.registry }

// BunDB returns the bun database when the bun provider is active.
func (c *Container) BunDB() *bun.DB { return c.bunDB }

// Close drops open sessions and releases connections the container opened.
func (c *Container) Close(ctx context.Context) error {
	c.sessionsMu.Lock()
	c.sessions = make(map[string]*sessionEntry)
	c.sessionsMu.Unlock()

	var errs []error
	if c.mongoClient != nil {
		errs = append(errs, c.mongoClient.Disconnect(ctx))
		c.mongoClient = nil
	}
	if c.ownsDB && c.bunDB != nil {
		errs = append(errs, c.bunDB.Close())
		c.bunDB = nil
	}
	return errors.Join(errs...)
}
