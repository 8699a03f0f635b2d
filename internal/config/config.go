package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by Load when an explicit config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type Config struct {
	DBDriver string `yaml:"db_driver"`
	DBUser   string `yaml:"db_user"`
	DBPass   string `yaml:"db_pass"`
	DBHost   string `yaml:"db_host"`
	DBPort   string `yaml:"db_port"`
	DBName   string `yaml:"db_name"`
	DBPath   string `yaml:"db_path"`
	ReadDSN  string `yaml:"read_dsn"`

	MaxOpenConns    int `yaml:"max_open_conns"`
	MaxIdleConns    int `yaml:"max_idle_conns"`
	ConnMaxLifetime int `yaml:"conn_max_lifetime_seconds"`

	Addr         string   `yaml:"addr"`
	DataDir      string   `yaml:"data_dir"`
	AllowOrigins []string `yaml:"cors_allowed_origins"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
	AutoMigrate  bool     `yaml:"auto_migrate"`
	SeedDev      bool     `yaml:"seed_dev"`
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func intFromEnv(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolFromEnv(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitAndTrim(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaults() Config {
	return Config{
		DBDriver:        DriverMySQL,
		DBUser:          "root",
		DBHost:          "127.0.0.1",
		DBPort:          "3306",
		DBName:          "billing",
		DBPath:          "billing.db",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 300,
		Addr:            ":3000",
		DataDir:         "data",
		LogLevel:        "info",
		LogFormat:       "json",
		AutoMigrate:     true,
	}
}

// New returns the configuration built from defaults and the environment.
func New() Config {
	cfg := defaults()
	cfg.applyEnv()
	return cfg
}

// Load reads .env (if present), then the optional YAML file at path, then the
// environment. Later sources win.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("BILLING_CONFIG")
	}
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrConfigNotFound
		}
		return Config{}, err
	}
	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DBDriver = strings.ToLower(getenv("DB_DRIVER", c.DBDriver))
	c.DBUser = getenv("DB_USER", c.DBUser)
	c.DBPass = getenv("DB_PASS", c.DBPass)
	c.DBHost = getenv("DB_HOST", c.DBHost)
	c.DBPort = getenv("DB_PORT", c.DBPort)
	c.DBName = getenv("DB_NAME", c.DBName)
	c.DBPath = getenv("DB_PATH", c.DBPath)
	c.ReadDSN = getenv("READ_DSN", c.ReadDSN)
	c.MaxOpenConns = intFromEnv("DB_MAX_OPEN_CONNS", c.MaxOpenConns)
	c.MaxIdleConns = intFromEnv("DB_MAX_IDLE_CONNS", c.MaxIdleConns)
	c.ConnMaxLifetime = intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", c.ConnMaxLifetime)
	if port := getenv("PORT", ""); port != "" {
		c.Addr = ":" + port
	}
	c.Addr = getenv("ADDR", c.Addr)
	c.DataDir = getenv("DATA_DIR", c.DataDir)
	if v := getenv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		c.AllowOrigins = splitAndTrim(v)
	}
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("LOG_FORMAT", c.LogFormat)
	c.AutoMigrate = boolFromEnv("AUTO_MIGRATE", c.AutoMigrate)
	c.SeedDev = boolFromEnv("SEED_DEV", c.SeedDev)
}

// ConnMaxLifetimeDuration is ConnMaxLifetime as a time.Duration.
func (c Config) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(c.ConnMaxLifetime) * time.Second
}

func (c Config) MySQLDSN() string {
	if c.ReadDSN != "" {
		return c.ReadDSN
	}
	mc := mysql.NewConfig()
	mc.User = c.DBUser
	mc.Passwd = c.DBPass
	mc.Net = "tcp"
	mc.Addr = c.DBHost + ":" + c.DBPort
	mc.DBName = c.DBName
	mc.ParseTime = true
	// UPDATE reports matched rows, so an unchanged invoice is not a 404.
	mc.ClientFoundRows = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// SQLiteDSN returns the DSN for the sqlite driver. Foreign keys are switched
// on unless DB_PATH already carries its own query string.
func (c Config) SQLiteDSN() string {
	if c.ReadDSN != "" {
		return c.ReadDSN
	}
	if strings.Contains(c.DBPath, "?") {
		return c.DBPath
	}
	return c.DBPath + "?_foreign_keys=1"
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.SQLiteDSN()
	}
	return c.MySQLDSN()
}
