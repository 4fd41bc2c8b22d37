package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Schedule modes.
const (
	ScheduleDerived    = "derived"
	ScheduleStandalone = "standalone"
)

type Config struct {
	ServerPort string `toml:"server_port"`
	GinMode    string `toml:"gin_mode"`
	LogLevel   string `toml:"log_level"`
	LogFormat  string `toml:"log_format"`

	StoreDriver string `toml:"store_driver"`
	SQLitePath  string `toml:"sqlite_path"`

	DBHost     string `toml:"db_host"`
	DBPort     string `toml:"db_port"`
	DBUser     string `toml:"db_user"`
	DBPassword string `toml:"db_password"`
	DBName     string `toml:"db_name"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	ScheduleMode   string        `toml:"schedule_mode"`
	ScheduleMirror bool          `toml:"schedule_mirror"`
	Timezone       string        `toml:"timezone"`
	TickInterval   time.Duration `toml:"-"`
	TickEvery      string        `toml:"tick_interval"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() *Config {
	return &Config{
		ServerPort:     "8080",
		GinMode:        "release",
		LogLevel:       "info",
		LogFormat:      "text",
		StoreDriver:    "sqlite",
		SQLitePath:     "taskflow.db",
		DBHost:         "localhost",
		DBPort:         "5431",
		DBUser:         "taskflow_user",
		DBPassword:     "taskflow_pass",
		DBName:         "taskflow_db",
		RedisAddr:      "localhost:6379",
		RedisPrefix:    "",
		ScheduleMode:   ScheduleDerived,
		ScheduleMirror: true,
		TickEvery:      "1m",
	}
}

// Load reads .env, then the optional TOML file named by TASKFLOW_CONFIG, then
// the process environment. Later sources win.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using system environment variables")
	}

	cfg := Defaults()
	if path, ok := os.LookupEnv("TASKFLOW_CONFIG"); ok && path != "" {
		if err := LoadFile(path, cfg); err != nil {
			log.WithError(err).Warnf("ignoring config file %s", path)
		}
	}

	applyEnv(cfg)
	if err := cfg.finish(); err != nil {
		log.WithError(err).Warn("invalid configuration value, falling back to defaults")
	}
	return cfg
}

// LoadFile decodes a TOML file over cfg.
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", cfg.ServerPort)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.StoreDriver = getEnv("STORE_DRIVER", cfg.StoreDriver)
	cfg.SQLitePath = getEnv("SQLITE_PATH", cfg.SQLitePath)
	cfg.DBHost = getEnv("DB_HOST", cfg.DBHost)
	cfg.DBPort = getEnv("DB_PORT", cfg.DBPort)
	cfg.DBUser = getEnv("DB_USER", cfg.DBUser)
	cfg.DBPassword = getEnv("DB_PASSWORD", cfg.DBPassword)
	cfg.DBName = getEnv("DB_NAME", cfg.DBName)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getEnvInt("REDIS_DB", cfg.RedisDB)
	cfg.RedisPrefix = getEnv("REDIS_PREFIX", cfg.RedisPrefix)
	cfg.ScheduleMode = getEnv("SCHEDULE_MODE", cfg.ScheduleMode)
	cfg.ScheduleMirror = getEnvBool("SCHEDULE_MIRROR", cfg.ScheduleMirror)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.TickEvery = getEnv("TICK_INTERVAL", cfg.TickEvery)
}

func (c *Config) finish() error {
	var errs []error
	if c.ScheduleMode != ScheduleDerived && c.ScheduleMode != ScheduleStandalone {
		errs = append(errs, fmt.Errorf("schedule mode %q", c.ScheduleMode))
		c.ScheduleMode = ScheduleDerived
	}

	c.TickInterval = time.Minute
	d, err := time.ParseDuration(c.TickEvery)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("tick interval: %w", err))
	case d <= 0:
		errs = append(errs, fmt.Errorf("tick interval %q must be positive", c.TickEvery))
	default:
		c.TickInterval = d
	}
	return errors.Join(errs...)
}

// Location resolves Timezone, defaulting to the host's local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.WithError(err).Warnf("unknown timezone %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

// PostgresDSN builds the connection string for the postgres store driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warnf("invalid %s=%q, using %d", key, value, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warnf("invalid %s=%q, using %t", key, value, defaultVal)
		return defaultVal
	}
	return b
}
