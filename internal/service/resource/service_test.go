package resource

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcare/admin-api/internal/config"
	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/internal/repository/sqlstore"
	apperrors "github.com/medcare/admin-api/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := sqlstore.Open(config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    "file:" + filepath.Join(t.TempDir(), "service.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := sqlstore.New(db, nil)
	require.NoError(t, store.EnsureSchema(context.Background(), model.Catalog()))
	return NewService(store)
}

func requireAppError(t *testing.T, err error, code apperrors.ErrorCode) *apperrors.AppError {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func TestCreatePatient(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	row, err := svc.Create(ctx, model.Patients, model.Row{
		"first_name": "  Jane ",
		"last_name":  "Doe",
		"phone":      "0712345678",
		"gender":     "Female",
		"dob":        "1990-05-01",
		"blood_type": "O+",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, row["id"])
	assert.NotEmpty(t, row["created_at"])
	assert.Equal(t, "Jane", row["first_name"])

	got, err := svc.Get(ctx, model.Patients, row["id"])
	require.NoError(t, err)
	assert.Equal(t, row, got)

	n, err := svc.Count(ctx, model.Patients)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCreateMissingRequiredFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Patients, model.Row{
		"first_name": "   ",
		"last_name":  "Doe",
	})
	appErr := requireAppError(t, err, apperrors.ErrValidation)
	assert.Contains(t, appErr.Fields, "first_name")
	assert.Contains(t, appErr.Fields, "phone")
	assert.NotContains(t, appErr.Fields, "last_name")

	n, err := svc.Count(ctx, model.Patients)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCreateRejectsUnknownFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), model.Patients, model.Row{
		"first_name": "Jane",
		"last_name":  "Doe",
		"phone":      "0712345678",
		"nickname":   "JD",
		"created_at": "2001-01-01T00:00:00Z",
	})
	appErr := requireAppError(t, err, apperrors.ErrValidation)
	assert.Equal(t, []string{"created_at", "nickname"}, appErr.Fields)
}

func TestCreateValidatesEnumAndDate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), model.Patients, model.Row{
		"first_name": "Jane",
		"last_name":  "Doe",
		"phone":      "0712345678",
		"gender":     "Unknown",
		"dob":        "01/05/1990",
		"blood_type": "AB+",
	})
	appErr := requireAppError(t, err, apperrors.ErrValidation)
	assert.ElementsMatch(t, []string{"gender", "dob"}, appErr.Fields)
}

func TestCreateDuplicatePhoneConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Patients, model.Row{
		"first_name": "Jane", "last_name": "Doe", "phone": "0700111222",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, model.Patients, model.Row{
		"first_name": "John", "last_name": "Smith", "phone": "0700111222",
	})
	appErr := requireAppError(t, err, apperrors.ErrConflict)
	assert.Contains(t, appErr.Message, "Phone")

	n, err := svc.Count(ctx, model.Patients)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStaffStatusDefaultsToActive(t *testing.T) {
	svc := newTestService(t)

	row, err := svc.Create(context.Background(), model.Staff, model.Row{
		"name": "Grace Mutua",
		"role": "Nurse",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StaffStatusActive, row["status"])
}

func TestUpdateKeepsOmittedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Doctors, model.Row{
		"name":      "Asha Njoroge",
		"specialty": "Cardiology",
		"phone":     "0711000111",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, model.Doctors, created["id"], model.Row{
		"department": "Cardiac Unit",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cardiac Unit", updated["department"])
	assert.Equal(t, "Asha Njoroge", updated["name"])
	assert.Equal(t, "0711000111", updated["phone"])
	assert.Equal(t, created["created_at"], updated["created_at"])

	got, err := svc.Get(ctx, model.Doctors, created["id"])
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateRejectsBlankedRequiredField(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Doctors, model.Row{
		"name": "Asha Njoroge", "specialty": "Cardiology",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, model.Doctors, created["id"], model.Row{"name": "  "})
	appErr := requireAppError(t, err, apperrors.ErrValidation)
	assert.Equal(t, []string{"name"}, appErr.Fields)

	got, err := svc.Get(ctx, model.Doctors, created["id"])
	require.NoError(t, err)
	assert.Equal(t, "Asha Njoroge", got["name"])
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update(context.Background(), model.Doctors, "missing-id", model.Row{
		"department": "Cardiac Unit",
	})
	requireAppError(t, err, apperrors.ErrNotFound)
}

func TestDeleteLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.Staff, model.Row{
		"name": "Grace Mutua", "role": "Nurse",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, model.Staff, created["id"]))

	_, err = svc.Get(ctx, model.Staff, created["id"])
	requireAppError(t, err, apperrors.ErrNotFound)

	err = svc.Delete(ctx, model.Staff, created["id"])
	requireAppError(t, err, apperrors.ErrNotFound)
}

func TestListTrimsFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.Patients, model.Row{
		"first_name": "Jane", "last_name": "Doe", "phone": "0712345678",
	})
	require.NoError(t, err)

	rows, err := svc.List(ctx, model.Patients, "  0712  ")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFieldRule(t *testing.T) {
	assert.Equal(t, "required", fieldRule(model.Field{Kind: model.FieldText, Required: true}))
	assert.Equal(t, "omitempty,datetime=2006-01-02", fieldRule(model.Field{Kind: model.FieldDate}))
	assert.Equal(t, "omitempty,oneof='A' 'B C'",
		fieldRule(model.Field{Kind: model.FieldEnum, Options: []string{"A", "B C"}}))
}
