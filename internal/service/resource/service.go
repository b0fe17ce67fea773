package resource

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/internal/repository"
	apperrors "github.com/medcare/admin-api/pkg/errors"
)

// ResourceService carries the semantics shared by every catalog resource:
// validation before any store call, normalization, identity assignment and
// taxonomy mapping.
type ResourceService interface {
	List(ctx context.Context, schema *model.Schema, filter string) ([]model.Row, error)
	Get(ctx context.Context, schema *model.Schema, id string) (model.Row, error)
	Create(ctx context.Context, schema *model.Schema, input model.Row) (model.Row, error)
	Update(ctx context.Context, schema *model.Schema, id string, input model.Row) (model.Row, error)
	Delete(ctx context.Context, schema *model.Schema, id string) error
	Count(ctx context.Context, schema *model.Schema) (int64, error)
}

type Service struct {
	store    repository.ResourceStore
	validate *validator.Validate
}

func NewService(store repository.ResourceStore) *Service {
	return &Service{
		store:    store,
		validate: validator.New(),
	}
}

func (s *Service) List(ctx context.Context, schema *model.Schema, filter string) ([]model.Row, error) {
	rows, err := s.store.List(ctx, schema, strings.TrimSpace(filter))
	if err != nil {
		return nil, s.mapStoreError(schema, err)
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, schema *model.Schema, id string) (model.Row, error) {
	row, err := s.store.Get(ctx, schema, id)
	if err != nil {
		return nil, s.mapStoreError(schema, err)
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, schema *model.Schema, input model.Row) (model.Row, error) {
	row, err := s.buildRow(schema, input, nil)
	if err != nil {
		return nil, err
	}

	row[model.ColumnID] = uuid.NewString()
	row[model.ColumnCreatedAt] = time.Now().UTC().Format(model.TimeLayout)

	if err := s.store.Create(ctx, schema, row); err != nil {
		return nil, s.mapStoreError(schema, err)
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, schema *model.Schema, id string, input model.Row) (model.Row, error) {
	existing, err := s.store.Get(ctx, schema, id)
	if err != nil {
		return nil, s.mapStoreError(schema, err)
	}

	row, err := s.buildRow(schema, input, existing)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, schema, id, row); err != nil {
		return nil, s.mapStoreError(schema, err)
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, schema *model.Schema, id string) error {
	if err := s.store.Delete(ctx, schema, id); err != nil {
		return s.mapStoreError(schema, err)
	}
	return nil
}

func (s *Service) Count(ctx context.Context, schema *model.Schema) (int64, error) {
	n, err := s.store.Count(ctx, schema)
	if err != nil {
		return 0, s.mapStoreError(schema, err)
	}
	return n, nil
}

// buildRow merges the payload onto the stored row (update) or the schema
// defaults (create), trims every value, and validates the result. Nothing
// reaches the store unless the whole row is valid.
func (s *Service) buildRow(schema *model.Schema, input model.Row, existing model.Row) (model.Row, error) {
	var bad []string

	for key := range input {
		if _, ok := schema.Field(key); !ok {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, apperrors.Validation(
			fmt.Sprintf("unknown fields: %s", strings.Join(bad, ", ")), bad...)
	}

	row := make(model.Row, len(schema.Fields)+2)
	for _, f := range schema.Fields {
		value, submitted := input[f.Name]
		switch {
		case submitted:
			row[f.Name] = strings.TrimSpace(value)
		case existing != nil:
			row[f.Name] = existing[f.Name]
		default:
			row[f.Name] = f.Default
		}
	}
	if existing != nil {
		row[model.ColumnID] = existing[model.ColumnID]
		row[model.ColumnCreatedAt] = existing[model.ColumnCreatedAt]
	}

	for _, f := range schema.Fields {
		if err := s.validate.Var(row[f.Name], fieldRule(f)); err != nil {
			bad = append(bad, f.Name)
		}
	}
	if len(bad) > 0 {
		return nil, apperrors.ValidationFields(bad)
	}
	return row, nil
}

// fieldRule compiles a schema field into validator tags. Enum options are
// quoted so values with spaces survive the oneof parameter split.
func fieldRule(f model.Field) string {
	var rules []string
	if f.Required {
		rules = append(rules, "required")
	} else {
		rules = append(rules, "omitempty")
	}

	switch f.Kind {
	case model.FieldDate:
		rules = append(rules, "datetime=2006-01-02")
	case model.FieldEnum:
		quoted := make([]string, len(f.Options))
		for i, opt := range f.Options {
			quoted[i] = "'" + opt + "'"
		}
		rules = append(rules, "oneof="+strings.Join(quoted, " "))
	}

	return strings.Join(rules, ",")
}

func (s *Service) mapStoreError(schema *model.Schema, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(schema.Singular, err)
	case errors.Is(err, repository.ErrConflict):
		return apperrors.Conflict(conflictMessage(schema), err)
	default:
		return apperrors.Store(err)
	}
}

func conflictMessage(schema *model.Schema) string {
	var unique []string
	for _, f := range schema.Fields {
		if f.Unique {
			unique = append(unique, f.Label)
		}
	}
	if len(unique) == 0 {
		return fmt.Sprintf("%s already exists", schema.Singular)
	}
	return fmt.Sprintf("a %s with this %s already exists",
		schema.Singular, strings.Join(unique, " or "))
}
