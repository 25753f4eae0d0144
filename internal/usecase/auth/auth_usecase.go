package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpMin = 100000
	otpMax = 999999
)

// Notifier delivers one-time codes to the channel being verified.
type Notifier interface {
	SendEmailOTP(ctx context.Context, email, otp string) error
	SendSMSOTP(ctx context.Context, phone, otp string) error
}

type AuthUseCase struct {
	userRepo  repository.UserRepository
	otpRepo   repository.OTPRepository
	notifier  Notifier
	jwtSecret string
	tokenTTL  time.Duration
	otpTTL    time.Duration
	logger    *zap.Logger

	now         func() time.Time
	generateOTP func() (string, error)
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	otpRepo repository.OTPRepository,
	notifier Notifier,
	jwtSecret string,
	tokenTTL time.Duration,
	otpTTL time.Duration,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		notifier:    notifier,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		otpTTL:      otpTTL,
		logger:      logger,
		now:         time.Now,
		generateOTP: generateSecureOTP,
	}
}

// RegisterRequest represents sign-up with either an email or a phone number
type RegisterRequest struct {
	Identifier      string                `json:"identifier" binding:"required,min=3"`
	Type            domain.IdentifierType `json:"type" binding:"required,oneof=EMAIL PHONE"`
	Password        string                `json:"password" binding:"required,min=6"`
	ConfirmPassword string                `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type VerifyOTPRequest struct {
	Identifier string                `json:"identifier" binding:"required,min=3"`
	Type       domain.IdentifierType `json:"type" binding:"required,oneof=EMAIL PHONE"`
	OTP        string                `json:"otp" binding:"required,len=6,numeric"`
}

type LoginRequest struct {
	Identifier string                `json:"identifier" binding:"required,min=3"`
	Type       domain.IdentifierType `json:"type" binding:"required,oneof=EMAIL PHONE"`
	Password   string                `json:"password" binding:"required"`
}

type RegisterResponse struct {
	UserID uuid.UUID `json:"userId"`
	IsNew  bool      `json:"isNew"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

// Register creates an account or, for an account that never finished
// verification, replaces its password and sends a fresh code.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	if !req.Type.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	identifier := normalizeIdentifier(req.Type, req.Identifier)

	user, err := uc.userRepo.GetByIdentifier(ctx, req.Type, identifier)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user != nil && user.IsVerified(req.Type) {
		return nil, domain.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	isNew := user == nil
	if isNew {
		passwordHash := string(hash)
		user = &domain.User{PasswordHash: &passwordHash}
		switch req.Type {
		case domain.IdentifierEmail:
			user.Email = &identifier
		case domain.IdentifierPhone:
			user.Phone = &identifier
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrUserAlreadyExists) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err := uc.userRepo.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := uc.sendOTP(ctx, req.Type, identifier); err != nil {
		return nil, err
	}

	uc.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(req.Type)),
		zap.Bool("is_new", isNew),
	)

	return &RegisterResponse{UserID: user.ID, IsNew: isNew}, nil
}

// VerifyOTP checks the pending code, marks the channel verified and logs the
// user in.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, req *VerifyOTPRequest) (*AuthResponse, error) {
	if !req.Type.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	identifier := normalizeIdentifier(req.Type, req.Identifier)

	user, err := uc.userRepo.GetByIdentifier(ctx, req.Type, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	stored, err := uc.otpRepo.Get(ctx, req.Type, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return nil, domain.ErrInvalidOTP
		}
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.OTP)) != 1 {
		return nil, domain.ErrInvalidOTP
	}

	if err := uc.userRepo.MarkVerified(ctx, user.ID, req.Type); err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	switch req.Type {
	case domain.IdentifierEmail:
		user.IsEmailVerified = true
	case domain.IdentifierPhone:
		user.IsPhoneVerified = true
	}

	if err := uc.otpRepo.Delete(ctx, req.Type, identifier); err != nil {
		uc.logger.Warn("failed to delete used otp", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	return uc.authResponse(user)
}

func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if !req.Type.IsValid() {
		return nil, domain.ErrInvalidInput
	}
	identifier := normalizeIdentifier(req.Type, req.Identifier)

	user, err := uc.userRepo.GetByIdentifier(ctx, req.Type, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsVerified(req.Type) {
		return nil, domain.ErrUserNotVerified
	}

	if user.PasswordHash == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return uc.authResponse(user)
}

func (uc *AuthUseCase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// VerifyToken verifies JWT token and returns user ID
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(uc.now))

	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}

	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.ErrInvalidToken
	}

	return userID, nil
}

func (uc *AuthUseCase) authResponse(user *domain.User) (*AuthResponse, error) {
	token, expiresAt, err := uc.issueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (uc *AuthUseCase) issueToken(userID uuid.UUID) (string, time.Time, error) {
	now := uc.now()
	expiresAt := now.Add(uc.tokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// sendOTP stores a fresh code and hands it to the notifier. A delivery
// failure is logged only; the user can register again to get a new code.
func (uc *AuthUseCase) sendOTP(ctx context.Context, idType domain.IdentifierType, identifier string) error {
	code, err := uc.generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := uc.otpRepo.Save(ctx, idType, identifier, code, uc.otpTTL); err != nil {
		return err
	}

	switch idType {
	case domain.IdentifierEmail:
		err = uc.notifier.SendEmailOTP(ctx, identifier, code)
	case domain.IdentifierPhone:
		err = uc.notifier.SendSMSOTP(ctx, identifier, code)
	}
	if err != nil {
		uc.logger.Warn("failed to deliver otp", zap.String("type", string(idType)), zap.Error(err))
	}
	return nil
}

func generateSecureOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+otpMin), nil
}

// Emails are case-insensitive; phone numbers are only trimmed.
func normalizeIdentifier(idType domain.IdentifierType, identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if idType == domain.IdentifierEmail {
		return strings.ToLower(identifier)
	}
	return identifier
}
