package repository

import (
	"context"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/google/uuid"
)

// MatchRepository is the read-only view of the profile store used by match
// resolution.
type MatchRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	QueryCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]*domain.Profile, error)
}
