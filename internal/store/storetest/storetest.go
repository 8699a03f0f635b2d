// Package storetest opens throwaway in-memory stores for tests.
package storetest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"billing-admin/internal/config"
	"billing-admin/internal/store"

	"github.com/sirupsen/logrus"
)

// Logger returns a logger that discards output.
func Logger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// New opens a migrated SQLite in-memory store private to t.
func New(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	st, err := store.Open(context.Background(), config.DriverSQLite, dsn, store.Options{MaxOpenConns: 1, MaxIdleConns: 1}, Logger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}
