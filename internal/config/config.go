package config

import (
	"fmt"
	"log"
	"time"

	"course-finder/internal/infrastructure/cache"
	"course-finder/internal/infrastructure/database"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Search   SearchConfig   `mapstructure:"search"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Log      LogConfig      `mapstructure:"log"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	MaxHeaderBytes int      `mapstructure:"max_header_bytes"`
	AllowOrigins   []string `mapstructure:"allow_origins"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	Path         string `mapstructure:"path"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Name         string `mapstructure:"name"`
	SSLMode      string `mapstructure:"ssl_mode"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	LogQueries   bool   `mapstructure:"log_queries"`
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Password        string        `mapstructure:"password"`
	DB              int           `mapstructure:"db"`
	PoolSize        int           `mapstructure:"pool_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	WarmOnStart     bool          `mapstructure:"warm_on_start"`
	WarmConcurrency int           `mapstructure:"warm_concurrency"`
}

// SearchConfig holds eligibility search limits
type SearchConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

// IngestConfig holds catalog ingestion settings
type IngestConfig struct {
	CoursesFile  string `mapstructure:"courses_file"`
	ProgramsFile string `mapstructure:"programs_file"`
	CheckCycles  bool   `mapstructure:"check_cycles"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	FilePath string `mapstructure:"file_path"`
}

var config *Config

// Init initializes the configuration
func Init() {
	config = &Config{}

	// Set default values
	setDefaults()

	// Unmarshal configuration from viper
	if err := viper.Unmarshal(config); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}

// Get returns the global configuration
func Get() *Config {
	if config == nil {
		Init()
	}
	return config
}

// DatabaseOptions converts the database section into connection settings
func (c *Config) DatabaseOptions() database.Config {
	return database.Config{
		Driver:       c.Database.Driver,
		Path:         c.Database.Path,
		Host:         c.Database.Host,
		Port:         c.Database.Port,
		User:         c.Database.Username,
		Password:     c.Database.Password,
		DBName:       c.Database.Name,
		SSLMode:      c.Database.SSLMode,
		MaxOpenConns: c.Database.MaxOpenConns,
		MaxIdleConns: c.Database.MaxIdleConns,
		LogQueries:   c.Database.LogQueries,
	}
}

// CacheOptions converts the cache section into Redis connection settings
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Host:     c.Cache.Host,
		Port:     c.Cache.Port,
		Password: c.Cache.Password,
		DB:       c.Cache.DB,
		PoolSize: c.Cache.PoolSize,
	}
}

// ServerAddr returns host:port for the HTTP listener
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "course-finder")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 15)
	viper.SetDefault("server.write_timeout", 15)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.allow_origins", []string{"*"})

	// Database defaults
	viper.SetDefault("database.driver", database.DriverSQLite)
	viper.SetDefault("database.path", "courses.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.name", "course_finder")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.log_queries", false)

	// Cache defaults
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.host", "localhost")
	viper.SetDefault("cache.port", 6379)
	viper.SetDefault("cache.password", "")
	viper.SetDefault("cache.db", 0)
	viper.SetDefault("cache.pool_size", 10)
	viper.SetDefault("cache.ttl", "30m")
	viper.SetDefault("cache.warm_on_start", true)
	viper.SetDefault("cache.warm_concurrency", 8)

	// Search defaults
	viper.SetDefault("search.default_limit", 10)
	viper.SetDefault("search.max_limit", 100)

	// Ingest defaults
	viper.SetDefault("ingest.courses_file", "all_course_data.json")
	viper.SetDefault("ingest.programs_file", "")
	viper.SetDefault("ingest.check_cycles", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file_path", "")
}
