package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Discovery DiscoveryConfig
	Geo       GeoConfig
	Worker    WorkerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	PropertiesCacheTTL time.Duration
	AreasCacheTTL      time.Duration
}

// DiscoveryConfig - параметры discovery-движка
type DiscoveryConfig struct {
	DefaultLimit     int
	DefaultCenterLat float64
	DefaultCenterLon float64
	SessionIdleTTL   time.Duration
}

// GeoConfig - параметры best-effort геолокации по IP клиента
type GeoConfig struct {
	Enabled        bool
	BaseURL        string
	RequestTimeout time.Duration
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	MaxRetries    int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			PropertiesCacheTTL: time.Duration(viper.GetInt("PROPERTIES_CACHE_TTL")) * time.Second,
			AreasCacheTTL:      time.Duration(viper.GetInt("AREAS_CACHE_TTL")) * time.Second,
		},
		Discovery: DiscoveryConfig{
			DefaultLimit:     viper.GetInt("DISCOVERY_DEFAULT_LIMIT"),
			DefaultCenterLat: viper.GetFloat64("DISCOVERY_DEFAULT_CENTER_LAT"),
			DefaultCenterLon: viper.GetFloat64("DISCOVERY_DEFAULT_CENTER_LON"),
			SessionIdleTTL:   time.Duration(viper.GetInt("DISCOVERY_SESSION_IDLE_TTL")) * time.Second,
		},
		Geo: GeoConfig{
			Enabled:        viper.GetBool("GEO_ENABLED"),
			BaseURL:        viper.GetString("GEO_BASE_URL"),
			RequestTimeout: time.Duration(viper.GetInt("GEO_REQUEST_TIMEOUT")) * time.Second,
		},
		Worker: WorkerConfig{
			Enabled:       viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup: viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:    viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.PropertiesCacheTTL == 0 {
		cfg.Cache.PropertiesCacheTTL = 300 * time.Second
	}
	if cfg.Cache.AreasCacheTTL == 0 {
		cfg.Cache.AreasCacheTTL = 300 * time.Second
	}
	if cfg.Discovery.DefaultLimit == 0 {
		cfg.Discovery.DefaultLimit = 50
	}
	if cfg.Discovery.SessionIdleTTL == 0 {
		cfg.Discovery.SessionIdleTTL = 30 * time.Minute
	}
	if cfg.Geo.BaseURL == "" {
		cfg.Geo.BaseURL = "http://ip-api.com"
	}
	if cfg.Geo.RequestTimeout == 0 {
		cfg.Geo.RequestTimeout = 3 * time.Second
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "discovery-analytics-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
