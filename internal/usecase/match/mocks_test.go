package match

import (
	"context"
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockMatchRepository struct {
	mock.Mock
}

func (m *mockMatchRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMatchRepository) QueryCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]*domain.Profile, error) {
	args := m.Called(ctx, filter, limit)
	if p := args.Get(0); p != nil {
		return p.([]*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func datePtr(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}
