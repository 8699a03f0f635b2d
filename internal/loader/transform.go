package loader

import (
	"context"
	"fmt"
	"strings"

	"billing-admin/models"
)

func mapPlatform(_ context.Context, row Row) ([]any, error) {
	return []any{row["platform_name"]}, nil
}

// CollapseNewlines replaces every newline with a single space.
func CollapseNewlines(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func mapClient(_ context.Context, row Row) ([]any, error) {
	return []any{
		row["full_name"],
		row["document_type"],
		row["document_number"],
		CollapseNewlines(row["address"]),
		row["phone"],
		row["email"],
	}, nil
}

func (l *Loader) mapInvoice(ctx context.Context, row Row) ([]any, error) {
	clientID, err := l.lookupID(ctx, "client_id",
		`SELECT client_id FROM clients WHERE document_number = ?`, row["document_number"])
	if err != nil {
		return nil, err
	}
	return []any{
		row["invoice_number"],
		clientID,
		row["billing_period"],
		row["billed_amount"],
		row["paid_amount"],
		models.TranslateStatus(row["status"]),
	}, nil
}

func (l *Loader) mapTransaction(ctx context.Context, row Row) ([]any, error) {
	platformID, err := l.lookupID(ctx, "platform_id",
		`SELECT platform_id FROM platforms WHERE platform_name = ?`, row["platform_name"])
	if err != nil {
		return nil, err
	}
	invoiceID, err := l.lookupID(ctx, "invoice_id",
		`SELECT invoice_id FROM invoices WHERE invoice_number = ?`, row["invoice_number"])
	if err != nil {
		return nil, err
	}
	return []any{
		row["transaction_code"],
		platformID,
		invoiceID,
		row["amount"],
		row["transaction_date"],
		models.TranslateStatus(row["status"]),
	}, nil
}

// lookupID returns column from the first row matched by query, or an
// ErrSkipRow error when nothing matches.
func (l *Loader) lookupID(ctx context.Context, column, query string, key string) (any, error) {
	rows, err := l.store.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", column, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no %s for %q", ErrSkipRow, column, key)
	}
	return rows[0][column], nil
}
