// Package loader bulk-loads the billing CSV exports into the store.
//
// Tables are loaded one after another and rows one at a time: invoices
// resolve clients, and transactions resolve platforms and invoices, by
// querying rows inserted earlier in the same run.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"billing-admin/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrSkipRow is returned (possibly wrapped) by a MapFunc to drop a row
// without failing the load.
var ErrSkipRow = errors.New("skip row")

// MapFunc turns a CSV row into the bind values of a Table's insert statement.
type MapFunc func(ctx context.Context, row Row) ([]any, error)

type Table struct {
	Name   string
	File   string
	Insert string
	Map    MapFunc
}

// Result summarises one table load.
type Result struct {
	Table    string `json:"table"`
	Read     int    `json:"read"`
	Inserted int64  `json:"inserted"`
	Skipped  int    `json:"skipped"`
}

// Store is the subset of the store the loader needs.
type Store interface {
	Query(ctx context.Context, query string, args ...any) ([]store.Row, error)
	Exec(ctx context.Context, query string, args ...any) (store.Result, error)
}

type Loader struct {
	store Store
	log   logrus.FieldLogger
}

func New(st Store, log logrus.FieldLogger) *Loader {
	return &Loader{store: st, log: log.WithField("module", "loader")}
}

// LoadTable reads t.File and inserts its rows in file order. The first
// read, lookup or insert error aborts the load; rows inserted before it
// stay in the store.
func (l *Loader) LoadTable(ctx context.Context, t Table) (Result, error) {
	res := Result{Table: t.Name}
	log := l.log.WithField("table", t.Name)

	records, err := ReadCSV(t.File)
	if err != nil {
		return res, fmt.Errorf("%s: read %s: %w", t.Name, t.File, err)
	}
	res.Read = len(records)

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		values, err := t.Map(ctx, rec.Row)
		if errors.Is(err, ErrSkipRow) {
			res.Skipped++
			log.WithField("line", rec.Line).Debug(err.Error())
			continue
		}
		if err != nil {
			return res, fmt.Errorf("%s line %d: %w", t.Name, rec.Line, err)
		}
		out, err := l.store.Exec(ctx, t.Insert, values...)
		if err != nil {
			return res, fmt.Errorf("%s line %d: insert: %w", t.Name, rec.Line, err)
		}
		res.Inserted += out.RowsAffected
	}
	return res, nil
}

// Run loads every table from dataDir in dependency order and stops at the
// first failing table.
func (l *Loader) Run(ctx context.Context, dataDir string) ([]Result, error) {
	runID := uuid.NewString()
	log := l.log.WithField("run_id", runID)
	started := time.Now()

	var results []Result
	for _, t := range l.Tables(dataDir) {
		res, err := l.LoadTable(ctx, t)
		if err != nil {
			log.WithFields(logrus.Fields{
				"table":    res.Table,
				"read":     res.Read,
				"inserted": res.Inserted,
				"skipped":  res.Skipped,
			}).WithError(err).Error("load failed")
			return results, err
		}
		log.WithFields(logrus.Fields{
			"table":    res.Table,
			"read":     res.Read,
			"inserted": res.Inserted,
			"skipped":  res.Skipped,
		}).Info("table loaded")
		results = append(results, res)
	}
	log.WithField("elapsed", time.Since(started).String()).Info("csv data loaded")
	return results, nil
}

// Tables returns the four billing tables, in load order, reading from dataDir.
func (l *Loader) Tables(dataDir string) []Table {
	return []Table{
		{
			Name:   "platforms",
			File:   filepath.Join(dataDir, "platforms.csv"),
			Insert: `INSERT IGNORE INTO platforms (platform_name) VALUES (?)`,
			Map:    mapPlatform,
		},
		{
			Name:   "clients",
			File:   filepath.Join(dataDir, "clients.csv"),
			Insert: `INSERT INTO clients (full_name, document_type, document_number, address, phone, email) VALUES (?, ?, ?, ?, ?, ?)`,
			Map:    mapClient,
		},
		{
			Name:   "invoices",
			File:   filepath.Join(dataDir, "invoices.csv"),
			Insert: `INSERT INTO invoices (invoice_number, client_id, billing_period, billed_amount, paid_amount, status) VALUES (?, ?, ?, ?, ?, ?)`,
			Map:    l.mapInvoice,
		},
		{
			Name:   "transactions",
			File:   filepath.Join(dataDir, "transactions.csv"),
			Insert: `INSERT INTO transactions (transaction_code, platform_id, invoice_id, amount, transaction_date, status) VALUES (?, ?, ?, ?, ?, ?)`,
			Map:    l.mapTransaction,
		},
	}
}
