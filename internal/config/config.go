package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "ShowShelf/1.0 (+https://github.com/Belphemur/ShowShelf)"

// DefaultAPIBaseURL is the public TVMaze REST endpoint.
const DefaultAPIBaseURL = "https://api.tvmaze.com"

type Config struct {
	APIBaseURL            string `mapstructure:"api_base_url"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1h", etc.
	UserAgent             string `mapstructure:"user_agent"`
	Server                struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	GRPC struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"grpc"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	LogLevel string `mapstructure:"log_level"`
	Cache    struct {
		Provider string `mapstructure:"provider"` // "memory" or "redis"
		Size     int    `mapstructure:"size"`     // Maximum number of entries in the LRU cache
		TTL      string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		Redis    struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"cache"`
	Sessions struct {
		Size int    `mapstructure:"size"`
		TTL  string `mapstructure:"ttl"`
	} `mapstructure:"sessions"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	level := zerolog.InfoLevel
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)
	logger.Debug().Str("level", level.String()).Msg("Logging configured")

	globalConfig = config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("server.address", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("grpc.enabled", false)
	v.SetDefault("grpc.port", 8081)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 500)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("sessions.size", 1000)
	v.SetDefault("sessions.ttl", "2h")
}

// LoadConfig reads config.yaml from the working directory (or ./config) and
// overlays APP_* environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("sentry_dsn", "SENTRY_DSN")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	config.APIBaseURL = strings.TrimRight(config.APIBaseURL, "/")

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}
	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
