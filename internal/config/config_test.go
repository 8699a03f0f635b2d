package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DB_DRIVER", "DB_USER", "DB_PASS", "DB_HOST", "DB_PORT", "DB_NAME", "DB_PATH", "READ_DSN",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME_SECONDS",
		"PORT", "ADDR", "DATA_DIR", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT", "AUTO_MIGRATE",
		"SEED_DEV", "BILLING_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := New()

	assert.Equal(t, DriverMySQL, cfg.DBDriver)
	assert.Equal(t, "billing", cfg.DBName)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.True(t, cfg.AutoMigrate)
	assert.Empty(t, cfg.AllowOrigins)
}

func TestNew_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/x.db")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg := New()

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 10, cfg.MaxOpenConns)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	assert.False(t, cfg.AutoMigrate)
	assert.Equal(t, "/tmp/x.db?_foreign_keys=1", cfg.DSN())
}

func TestSQLiteDSN_KeepsExplicitQuery(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "file:billing?mode=memory")

	assert.Equal(t, "file:billing?mode=memory", New().DSN())
}

func TestNew_AddrWinsOverPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ADDR", "127.0.0.1:7000")

	assert.Equal(t, "127.0.0.1:7000", New().Addr)
}

func TestMySQLDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "billing")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "3307")

	dsn := New().MySQLDSN()

	assert.True(t, strings.HasPrefix(dsn, "billing:secret@tcp(db.local:3307)/billing?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestMySQLDSN_ReadDSNOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("READ_DSN", "u:p@tcp(h:1)/d")

	assert.Equal(t, "u:p@tcp(h:1)/d", New().DSN())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "billing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_driver: sqlite\ndb_path: from-yaml.db\ndata_dir: /srv/csv\nlog_level: debug\n"), 0o600))
	t.Setenv("DATA_DIR", "/env/csv")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "from-yaml.db", cfg.DBPath)
	assert.Equal(t, "/env/csv", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.MaxOpenConns)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_NoFileMatchesNew(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_NAME", "billing_test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
	assert.Equal(t, "billing_test", cfg.DBName)
}

func TestLoad_PathFromEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "billing.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":8088\"\n"), 0o600))
	t.Setenv("BILLING_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8088", cfg.Addr)
}

func TestNewLogger(t *testing.T) {
	logg := NewLogger("debug", "text")
	assert.Equal(t, logrus.DebugLevel, logg.GetLevel())
	_, isText := logg.Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)

	logg = NewLogger("bogus", "")
	assert.Equal(t, logrus.InfoLevel, logg.GetLevel())
	_, isJSON := logg.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
