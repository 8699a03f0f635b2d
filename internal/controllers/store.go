package controllers

import (
	"context"

	"billing-admin/internal/store"
)

// Store is the part of the store the handlers use.
type Store interface {
	Select(ctx context.Context, dest any, query string, args ...any) error
	Exec(ctx context.Context, query string, args ...any) (store.Result, error)
	Ping(ctx context.Context) error
}
