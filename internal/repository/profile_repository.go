package repository

import (
	"context"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/google/uuid"
)

type ProfileRepository interface {
	MatchRepository
	CreateBasic(ctx context.Context, profile *domain.Profile) error
	Upsert(ctx context.Context, profile *domain.Profile) error
	UpdateFields(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error)
}
