package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
)

// OTPRepository keeps one pending verification code per identifier.
type OTPRepository interface {
	Save(ctx context.Context, idType domain.IdentifierType, identifier, code string, ttl time.Duration) error
	Get(ctx context.Context, idType domain.IdentifierType, identifier string) (string, error)
	Delete(ctx context.Context, idType domain.IdentifierType, identifier string) error
}
