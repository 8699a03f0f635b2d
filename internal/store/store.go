package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"billing-admin/internal/config"
	"billing-admin/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Row is one result row keyed by column name.
type Row map[string]any

// Result reports the outcome of a write statement.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Store is the process-wide database handle. It is safe for concurrent use.
type Store struct {
	db     *gorm.DB
	sqlDB  *sql.DB
	log    logrus.FieldLogger
	driver string
}

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OptionsFromConfig extracts pool settings from cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetimeDuration(),
	}
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Open connects to the database and verifies the connection with a ping.
func Open(ctx context.Context, driver, dsn string, opts Options, log *logrus.Logger) (*Store, error) {
	dial, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(log.GetLevel()),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &Store{
		db:     db,
		sqlDB:  sqlDB,
		log:    log.WithField("module", "store"),
		driver: driver,
	}, nil
}

// OpenConfig opens the store described by cfg.
func OpenConfig(ctx context.Context, cfg config.Config, log *logrus.Logger) (*Store, error) {
	return Open(ctx, cfg.DBDriver, cfg.DSN(), OptionsFromConfig(cfg), log)
}

func gormLogLevel(l logrus.Level) logger.LogLevel {
	switch {
	case l >= logrus.DebugLevel:
		return logger.Info
	case l >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}

// Migrate creates or upgrades the four billing tables. Order matters for
// the foreign keys.
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.Platform{},
		&models.Client{},
		&models.Invoice{},
		&models.Transaction{},
	)
}

func (s *Store) Driver() string { return s.driver }

func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// rebind adapts MySQL-flavoured statements to the active dialect.
func (s *Store) rebind(query string) string {
	if s.driver != config.DriverSQLite {
		return query
	}
	trimmed := strings.TrimLeft(query, " \t\r\n")
	if len(trimmed) >= len("INSERT IGNORE") && strings.EqualFold(trimmed[:len("INSERT IGNORE")], "INSERT IGNORE") {
		return "INSERT OR IGNORE" + trimmed[len("INSERT IGNORE"):]
	}
	return query
}

// Query runs a read statement and returns every row as a column map.
func (s *Store) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	var raw []map[string]any
	if err := s.db.WithContext(ctx).Raw(s.rebind(query), args...).Scan(&raw).Error; err != nil {
		return nil, err
	}
	rows := make([]Row, len(raw))
	for i, m := range raw {
		rows[i] = Row(m)
	}
	return rows, nil
}

// Select scans the result of a read statement into dest, a pointer to a
// struct or slice of structs.
func (s *Store) Select(ctx context.Context, dest any, query string, args ...any) error {
	return s.db.WithContext(ctx).Raw(s.rebind(query), args...).Scan(dest).Error
}

// Exec runs a write statement.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	q := s.rebind(query)
	s.log.WithField("query", q).Debug("exec")
	res, err := s.sqlDB.ExecContext(ctx, q, args...)
	if err != nil {
		return Result{}, err
	}
	var out Result
	if out.RowsAffected, err = res.RowsAffected(); err != nil {
		return Result{}, err
	}
	// Not every statement yields an id; zero is fine.
	out.LastInsertID, _ = res.LastInsertId()
	return out, nil
}
