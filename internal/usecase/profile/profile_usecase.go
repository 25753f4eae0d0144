package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, logger *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// CreateBasicProfileRequest is the short onboarding form shown right after
// sign-up. It captures just enough to resolve matches.
type CreateBasicProfileRequest struct {
	FirstName         string        `json:"firstName" binding:"required,min=2,max=100"`
	LastName          *string       `json:"lastName" binding:"omitempty,max=100"`
	Gender            domain.Gender `json:"gender" binding:"required,gender"`
	ProfileCreatedFor *string       `json:"profileCreatedFor" binding:"omitempty,max=50"`
}

// RangeRequest is a closed [min, max] interval sent by the registration form.
type RangeRequest struct {
	Min *int `json:"min" binding:"required,min=0,lte=2147483647"`
	Max *int `json:"max" binding:"required,min=0,lte=2147483647"`
}

// RegisterFullProfileRequest is the long registration form.
type RegisterFullProfileRequest struct {
	FirstName         string        `json:"firstName" binding:"required,min=2,max=100"`
	LastName          *string       `json:"lastName" binding:"omitempty,max=100"`
	Contact           string        `json:"contact" binding:"required,min=10,max=20"`
	Gender            domain.Gender `json:"gender" binding:"required,gender"`
	ProfileCreatedFor *string       `json:"profileCreatedFor" binding:"omitempty,max=50"`
	DateOfBirth       string        `json:"dateOfBirth" binding:"required"`

	Height          int    `json:"height" binding:"required,gt=0,lte=2147483647"`
	Weight          int    `json:"weight" binding:"required,gt=0,lte=2147483647"`
	Caste           string `json:"caste" binding:"required,max=100"`
	MaritalStatus   string `json:"maritalStatus" binding:"required,max=50"`
	Education       string `json:"education" binding:"required,max=255"`
	PresentCountry  string `json:"presentCountry" binding:"required,max=100"`
	FinancialStatus string `json:"financialStatus" binding:"required,max=100"`

	Photos    []string `json:"photos" binding:"omitempty,dive,url"`
	Hobbies   []string `json:"hobbies"`
	Interests []string `json:"interests"`

	AgeRange                *RangeRequest `json:"ageRange" binding:"required"`
	HeightRange             *RangeRequest `json:"heightRange" binding:"required"`
	MaritalStatusPreference string        `json:"maritalStatusPreference" binding:"required,max=100"`
	ReligionPreference      string        `json:"religionPreference" binding:"required,max=100"`
	DietPreference          string        `json:"dietPreference" binding:"required,max=50"`
	Smoking                 string        `json:"smoking" binding:"required,max=20"`
	Drinking                string        `json:"drinking" binding:"required,max=20"`
	Distance                *int          `json:"distance" binding:"omitempty,min=0,lte=2147483647"`
}

// CreateBasicProfile creates the initial profile for a freshly verified user.
func (uc *ProfileUseCase) CreateBasicProfile(ctx context.Context, userID uuid.UUID, req *CreateBasicProfileRequest) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:            userID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Gender:            req.Gender,
		ProfileCreatedFor: req.ProfileCreatedFor,
		Photos:            []string{},
		Hobbies:           []string{},
		Interests:         []string{},
	}

	if err := uc.profileRepo.CreateBasic(ctx, profile); err != nil {
		if isRejectedWrite(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	uc.logger.Info("basic profile created",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()),
	)
	return profile, nil
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// RegisterFullProfile stores the complete registration form, creating the
// profile if the user skipped the basic step.
func (uc *ProfileUseCase) RegisterFullProfile(ctx context.Context, userID uuid.UUID, req *RegisterFullProfileRequest) (*domain.Profile, error) {
	dob, err := domain.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidFieldValue, domain.FieldDateOfBirth, err)
	}

	profile := &domain.Profile{
		UserID:            userID,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Contact:           &req.Contact,
		Gender:            req.Gender,
		ProfileCreatedFor: req.ProfileCreatedFor,
		DateOfBirth:       &dob,

		HeightCm:        &req.Height,
		WeightKg:        &req.Weight,
		Caste:           &req.Caste,
		MaritalStatus:   &req.MaritalStatus,
		Education:       &req.Education,
		PresentCountry:  &req.PresentCountry,
		FinancialStatus: &req.FinancialStatus,

		DietPreference: &req.DietPreference,
		Smoking:        &req.Smoking,
		Drinking:       &req.Drinking,

		Photos:    nonNil(req.Photos),
		Hobbies:   nonNil(req.Hobbies),
		Interests: nonNil(req.Interests),

		PartnerMinAge:               req.AgeRange.Min,
		PartnerMaxAge:               req.AgeRange.Max,
		PartnerMinHeight:            req.HeightRange.Min,
		PartnerMaxHeight:            req.HeightRange.Max,
		PartnerMaritalPreference:    &req.MaritalStatusPreference,
		PartnerReligionPreference:   &req.ReligionPreference,
		PartnerDistancePreferenceKm: req.Distance,
	}

	if err := profile.ValidatePreferences(); err != nil {
		return nil, err
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		if isRejectedWrite(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register profile: %w", err)
	}

	uc.logger.Info("full profile registered",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()),
	)
	return profile, nil
}

// UpdateMyProfile applies a partial update. The merged profile must still
// satisfy the preference range rules before anything is written.
func (uc *ProfileUseCase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, raw map[string]json.RawMessage) (*domain.Profile, error) {
	patch, err := domain.ParseProfilePatch(raw)
	if err != nil {
		return nil, err
	}

	existing, err := uc.GetMyProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := *existing
	patch.ApplyTo(&merged)
	if err := merged.ValidatePreferences(); err != nil {
		return nil, err
	}

	updated, err := uc.profileRepo.UpdateFields(ctx, userID, patch)
	if err != nil {
		if isRejectedWrite(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	uc.logger.Debug("profile updated",
		zap.String("user_id", userID.String()),
		zap.Int("fields", len(patch)),
	)
	return updated, nil
}

// isRejectedWrite reports errors the store raised because of the request
// itself rather than an infrastructure failure.
func isRejectedWrite(err error) bool {
	return errors.Is(err, domain.ErrProfileNotFound) ||
		errors.Is(err, domain.ErrProfileAlreadyExists) ||
		errors.Is(err, domain.ErrInvalidFieldValue) ||
		errors.Is(err, domain.ErrInvalidPreferenceRange)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
