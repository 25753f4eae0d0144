package repository

import (
	"context"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByIdentifier(ctx context.Context, idType domain.IdentifierType, identifier string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkVerified(ctx context.Context, id uuid.UUID, idType domain.IdentifierType) error
}
