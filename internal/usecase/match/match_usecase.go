package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MatchUseCase struct {
	matchRepo repository.MatchRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewMatchUseCase(matchRepo repository.MatchRepository, logger *zap.Logger) *MatchUseCase {
	return &MatchUseCase{
		matchRepo: matchRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// GetMatches loads the requester's profile, derives the effective filter and
// returns one capped page of candidates, most recently created first.
func (uc *MatchUseCase) GetMatches(ctx context.Context, userID uuid.UUID) (*domain.MatchResult, error) {
	requester, err := uc.matchRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get requester profile: %w", err)
	}

	filter, isTeaser := ResolvePreferences(requester)
	result := &domain.MatchResult{
		IsTeaser: isTeaser,
		Matches:  []*domain.Candidate{},
	}

	if !filter.Matchable() {
		uc.logger.Debug("no target gender for requester, skipping candidate query",
			zap.String("user_id", userID.String()),
			zap.String("gender", string(requester.Gender)),
		)
		return result, nil
	}

	profiles, err := uc.matchRepo.QueryCandidates(ctx, filter, domain.MatchPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	now := uc.now()
	for _, p := range profiles {
		if len(result.Matches) == domain.MatchPageSize {
			break
		}
		if p.UserID == requester.UserID {
			continue
		}
		result.Matches = append(result.Matches, domain.NewCandidate(p, now))
	}
	result.Count = len(result.Matches)

	uc.logger.Debug("matches resolved",
		zap.String("user_id", userID.String()),
		zap.Bool("is_teaser", isTeaser),
		zap.Int("count", result.Count),
		zap.String("target_gender", string(filter.TargetGender)),
		zap.Int("min_age", filter.MinAge),
		zap.Int("max_age", filter.MaxAge),
	)

	return result, nil
}
