package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userSelectColumns = `user_id, email, phone, password_hash, is_email_verified, is_phone_verified, created_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userSelectColumns + ` FROM users WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByIdentifier(ctx context.Context, idType domain.IdentifierType, identifier string) (*domain.User, error) {
	var query string
	switch idType {
	case domain.IdentifierEmail:
		query = `SELECT ` + userSelectColumns + ` FROM users WHERE email = $1`
	case domain.IdentifierPhone:
		query = `SELECT ` + userSelectColumns + ` FROM users WHERE phone = $1`
	default:
		return nil, domain.ErrInvalidInput
	}

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `
		INSERT INTO users (user_id, email, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.Phone, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE user_id = $2`
	return r.execOne(ctx, query, passwordHash, id)
}

func (r *userRepository) MarkVerified(ctx context.Context, id uuid.UUID, idType domain.IdentifierType) error {
	var query string
	switch idType {
	case domain.IdentifierEmail:
		query = `UPDATE users SET is_email_verified = TRUE WHERE user_id = $1`
	case domain.IdentifierPhone:
		query = `UPDATE users SET is_phone_verified = TRUE WHERE user_id = $1`
	default:
		return domain.ErrInvalidInput
	}
	return r.execOne(ctx, query, id)
}

func (r *userRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
