package repository

import (
	"context"
	"errors"

	"github.com/medcare/admin-api/internal/model"
)

// Store outcome sentinels, mapped to the error taxonomy at the service
// boundary.
var (
	ErrNotFound = errors.New("row not found")
	ErrConflict = errors.New("unique constraint violated")
)

// ResourceStore provides row-level CRUD for any catalog schema. Every call
// is one statement on one connection; no call spans rows or statements.
type ResourceStore interface {
	List(ctx context.Context, schema *model.Schema, filter string) ([]model.Row, error)
	Get(ctx context.Context, schema *model.Schema, id string) (model.Row, error)
	Create(ctx context.Context, schema *model.Schema, row model.Row) error
	Update(ctx context.Context, schema *model.Schema, id string, row model.Row) error
	Delete(ctx context.Context, schema *model.Schema, id string) error
	Count(ctx context.Context, schema *model.Schema) (int64, error)
}
