package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowShelf/internal/config"
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries kept by the memory provider.
	Size int
	// TTL is the lifetime of every entry.
	TTL time.Duration
	// OnEvict is called when the memory provider drops an entry.
	OnEvict EvictCallback
	// Logger receives backend errors. Nil disables error logging.
	Logger *zerolog.Logger
	// RedisAddress is the Redis/Valkey server address (e.g., "localhost:6379").
	RedisAddress  string
	RedisPassword string
	RedisDB       int
	// KeyPrefix namespaces redis keys. Defaults to "showshelf:".
	KeyPrefix string
	// Group labels the Prometheus metrics of this instance. When non-empty the
	// cache is wrapped with hit/miss/eviction instrumentation.
	Group string
}

// Provider is a constructor function that creates a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register makes a provider available under name.
// It panics on a nil provider or a duplicate name.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a Cache using the named provider.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	userEvict := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if userEvict != nil {
			userEvict(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	return newInstrumentedCache(inner, group), nil
}

// NewResponseCache builds the upstream response cache described by the
// application config. The catalog already keeps every successful response for
// the life of the process, so only a provider that outlives it (redis, shared
// across instances and restarts) is worth building; for "memory" it returns
// nil, nil.
func NewResponseCache(cfg *config.Config) (Cache, error) {
	provider := cfg.Cache.Provider
	if provider == "" {
		provider = "memory"
	}
	if provider == "memory" {
		logger := config.GetLogger()
		logger.Info().Msg("Response cache disabled for the memory provider, the catalog keeps responses in process")
		return nil, nil
	}
	return fromConfig(cfg, provider, "responses")
}

// NewSummaryCache builds the in-process cache of sanitized summary HTML. It
// always uses the memory provider with the configured size and TTL.
func NewSummaryCache(cfg *config.Config) (Cache, error) {
	return fromConfig(cfg, "memory", "summaries")
}

func fromConfig(cfg *config.Config, provider, group string) (Cache, error) {
	logger := config.GetLogger()

	ttl := time.Hour
	if cfg.Cache.TTL != "" {
		parsed, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			logger.Warn().Err(err).Str("ttl", cfg.Cache.TTL).Msg("Invalid cache TTL, using default 1h")
		} else {
			ttl = parsed
		}
	}

	size := cfg.Cache.Size
	if size <= 0 {
		size = 500
	}

	logger.Info().Str("provider", provider).Str("group", group).Int("size", size).Dur("ttl", ttl).Msg("Creating cache")

	return New(provider, ProviderConfig{
		Size:          size,
		TTL:           ttl,
		Logger:        &logger,
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         group,
	})
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
