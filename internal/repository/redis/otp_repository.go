package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp"

type otpRepository struct {
	client *goredis.Client
}

func NewOTPRepository(client *goredis.Client) repository.OTPRepository {
	return &otpRepository{client: client}
}

func otpKey(idType domain.IdentifierType, identifier string) string {
	return fmt.Sprintf("%s:%s:%s", otpKeyPrefix, strings.ToLower(string(idType)), strings.ToLower(strings.TrimSpace(identifier)))
}

// Save replaces any pending code for the identifier; expiry is left to Redis.
func (r *otpRepository) Save(ctx context.Context, idType domain.IdentifierType, identifier, code string, ttl time.Duration) error {
	if err := r.client.Set(ctx, otpKey(idType, identifier), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}
	return nil
}

func (r *otpRepository) Get(ctx context.Context, idType domain.IdentifierType, identifier string) (string, error) {
	code, err := r.client.Get(ctx, otpKey(idType, identifier)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", domain.ErrOTPNotFound
		}
		return "", fmt.Errorf("failed to read otp: %w", err)
	}
	return code, nil
}

func (r *otpRepository) Delete(ctx context.Context, idType domain.IdentifierType, identifier string) error {
	if err := r.client.Del(ctx, otpKey(idType, identifier)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp: %w", err)
	}
	return nil
}
