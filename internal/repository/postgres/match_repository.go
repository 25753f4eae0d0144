package postgres

import (
	"context"
	"fmt"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

// NewMatchRepository returns the read-only candidate view over profiles.
func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &profileRepository{db: db}
}

// QueryCandidates returns profiles of the target gender inside the filter
// bounds, newest first. Unknown birth dates and heights pass the range checks.
func (r *profileRepository) QueryCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]*domain.Profile, error) {
	query := `SELECT ` + profileSelectColumns + ` FROM profiles WHERE gender = $1`
	args := []interface{}{string(filter.TargetGender)}
	argCount := 2

	query += fmt.Sprintf(
		" AND (date_of_birth IS NULL OR date_part('year', age(date_of_birth)) BETWEEN $%d AND $%d)",
		argCount, argCount+1,
	)
	args = append(args, filter.MinAge, filter.MaxAge)
	argCount += 2

	query += fmt.Sprintf(" AND (height_cm IS NULL OR height_cm BETWEEN $%d AND $%d)", argCount, argCount+1)
	args = append(args, filter.MinHeight, filter.MaxHeight)
	argCount += 2

	if filter.MaritalPreference != "" && filter.MaritalPreference != domain.PreferenceAny {
		query += fmt.Sprintf(" AND marital_status = $%d", argCount)
		args = append(args, filter.MaritalPreference)
		argCount++
	}

	query += fmt.Sprintf(" AND user_id <> $%d", argCount)
	args = append(args, filter.ExcludeUserID)
	argCount++

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*domain.Profile, 0, limit)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}
