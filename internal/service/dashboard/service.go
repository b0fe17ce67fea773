package dashboard

import (
	"context"

	"github.com/medcare/admin-api/internal/model"
	"github.com/medcare/admin-api/internal/repository"
	apperrors "github.com/medcare/admin-api/pkg/errors"
)

// Service computes the landing-page totals live from the store; nothing is
// cached between requests.
type Service struct {
	store repository.ResourceStore
}

func NewService(store repository.ResourceStore) *Service {
	return &Service{store: store}
}

func (s *Service) Counts(ctx context.Context) (*model.DashboardCounts, error) {
	patients, err := s.store.Count(ctx, model.Patients)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	doctors, err := s.store.Count(ctx, model.Doctors)
	if err != nil {
		return nil, apperrors.Store(err)
	}
	staff, err := s.store.Count(ctx, model.Staff)
	if err != nil {
		return nil, apperrors.Store(err)
	}

	return &model.DashboardCounts{
		Patients: patients,
		Doctors:  doctors,
		Staff:    staff,
	}, nil
}
