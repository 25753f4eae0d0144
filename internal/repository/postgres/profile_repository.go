package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/gdugdh24/matrimony-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	uniqueViolation        = "23505"
	checkViolation         = "23514"
	stringDataRightTrunc   = "22001"
	numericValueOutOfRange = "22003"
)

var rangeConstraints = map[string]struct{}{
	"profiles_partner_age_range":    {},
	"profiles_partner_height_range": {},
}

const profileSelectColumns = `profile_id, user_id, first_name, last_name, contact, gender,
	date_of_birth, profile_created_for, height_cm, weight_kg, caste, marital_status,
	education, present_country, financial_status, diet_preference, smoking, drinking,
	photos, hobbies, interests,
	partner_min_age, partner_max_age, partner_min_height, partner_max_height,
	partner_marital_preference, partner_religion_preference, partner_distance_preference_km,
	created_at, updated_at`

// profileFieldColumns maps every patchable logical field to its column.
// Keys not listed here never reach SQL.
var profileFieldColumns = map[domain.ProfileField]string{
	domain.FieldFirstName:                   "first_name",
	domain.FieldLastName:                    "last_name",
	domain.FieldContact:                     "contact",
	domain.FieldGender:                      "gender",
	domain.FieldDateOfBirth:                 "date_of_birth",
	domain.FieldProfileCreatedFor:           "profile_created_for",
	domain.FieldHeightCm:                    "height_cm",
	domain.FieldWeightKg:                    "weight_kg",
	domain.FieldCaste:                       "caste",
	domain.FieldMaritalStatus:               "marital_status",
	domain.FieldEducation:                   "education",
	domain.FieldPresentCountry:              "present_country",
	domain.FieldFinancialStatus:             "financial_status",
	domain.FieldDietPreference:              "diet_preference",
	domain.FieldSmoking:                     "smoking",
	domain.FieldDrinking:                    "drinking",
	domain.FieldPhotos:                      "photos",
	domain.FieldHobbies:                     "hobbies",
	domain.FieldInterests:                   "interests",
	domain.FieldPartnerMinAge:               "partner_min_age",
	domain.FieldPartnerMaxAge:               "partner_max_age",
	domain.FieldPartnerMinHeight:            "partner_min_height",
	domain.FieldPartnerMaxHeight:            "partner_max_height",
	domain.FieldPartnerMaritalPreference:    "partner_marital_preference",
	domain.FieldPartnerReligionPreference:   "partner_religion_preference",
	domain.FieldPartnerDistancePreferenceKm: "partner_distance_preference_km",
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Contact, &p.Gender,
		&p.DateOfBirth, &p.ProfileCreatedFor, &p.HeightCm, &p.WeightKg, &p.Caste, &p.MaritalStatus,
		&p.Education, &p.PresentCountry, &p.FinancialStatus, &p.DietPreference, &p.Smoking, &p.Drinking,
		pq.Array(&p.Photos), pq.Array(&p.Hobbies), pq.Array(&p.Interests),
		&p.PartnerMinAge, &p.PartnerMaxAge, &p.PartnerMinHeight, &p.PartnerMaxHeight,
		&p.PartnerMaritalPreference, &p.PartnerReligionPreference, &p.PartnerDistancePreferenceKm,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// profileWriteError translates constraint failures that slipped past
// request validation into domain errors.
func profileWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case uniqueViolation:
		return domain.ErrProfileAlreadyExists
	case checkViolation:
		if _, ok := rangeConstraints[pqErr.Constraint]; ok {
			return domain.ErrInvalidPreferenceRange
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidFieldValue, pqErr.Constraint)
	case stringDataRightTrunc, numericValueOutOfRange:
		return fmt.Errorf("%w: %s", domain.ErrInvalidFieldValue, pqErr.Message)
	}
	return err
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileSelectColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) CreateBasic(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	query := `
		INSERT INTO profiles (profile_id, user_id, first_name, last_name, gender, profile_created_for)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.UserID, profile.FirstName, profile.LastName,
		string(profile.Gender), profile.ProfileCreatedFor,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return profileWriteError(err)
	}
	return nil
}

// Upsert inserts a full profile or replaces every registration field of the
// existing one. The stored profile id and creation time are written back.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	query := `
		INSERT INTO profiles (
			profile_id, user_id, first_name, last_name, contact, gender, profile_created_for,
			date_of_birth, height_cm, weight_kg, caste, marital_status,
			education, present_country, financial_status,
			photos, hobbies, interests,
			diet_preference, smoking, drinking,
			partner_min_age, partner_max_age, partner_min_height, partner_max_height,
			partner_marital_preference, partner_religion_preference, partner_distance_preference_km,
			updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15,
			$16, $17, $18,
			$19, $20, $21,
			$22, $23, $24, $25,
			$26, $27, $28,
			CURRENT_TIMESTAMP
		)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			contact = EXCLUDED.contact,
			gender = EXCLUDED.gender,
			profile_created_for = EXCLUDED.profile_created_for,
			date_of_birth = EXCLUDED.date_of_birth,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			caste = EXCLUDED.caste,
			marital_status = EXCLUDED.marital_status,
			education = EXCLUDED.education,
			present_country = EXCLUDED.present_country,
			financial_status = EXCLUDED.financial_status,
			photos = EXCLUDED.photos,
			hobbies = EXCLUDED.hobbies,
			interests = EXCLUDED.interests,
			diet_preference = EXCLUDED.diet_preference,
			smoking = EXCLUDED.smoking,
			drinking = EXCLUDED.drinking,
			partner_min_age = EXCLUDED.partner_min_age,
			partner_max_age = EXCLUDED.partner_max_age,
			partner_min_height = EXCLUDED.partner_min_height,
			partner_max_height = EXCLUDED.partner_max_height,
			partner_marital_preference = EXCLUDED.partner_marital_preference,
			partner_religion_preference = EXCLUDED.partner_religion_preference,
			partner_distance_preference_km = EXCLUDED.partner_distance_preference_km,
			updated_at = CURRENT_TIMESTAMP
		RETURNING profile_id, created_at, updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.UserID, profile.FirstName, profile.LastName, profile.Contact,
		string(profile.Gender), profile.ProfileCreatedFor,
		profile.DateOfBirth, profile.HeightCm, profile.WeightKg, profile.Caste, profile.MaritalStatus,
		profile.Education, profile.PresentCountry, profile.FinancialStatus,
		pq.Array(profile.Photos), pq.Array(profile.Hobbies), pq.Array(profile.Interests),
		profile.DietPreference, profile.Smoking, profile.Drinking,
		profile.PartnerMinAge, profile.PartnerMaxAge, profile.PartnerMinHeight, profile.PartnerMaxHeight,
		profile.PartnerMaritalPreference, profile.PartnerReligionPreference, profile.PartnerDistancePreferenceKm,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return profileWriteError(err)
	}
	return nil
}

// UpdateFields writes only the patched columns and returns the stored row.
func (r *profileRepository) UpdateFields(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error) {
	if len(patch) == 0 {
		return nil, domain.ErrEmptyProfilePatch
	}

	setClauses := make([]string, 0, len(patch)+1)
	args := make([]interface{}, 0, len(patch)+1)
	argCount := 1

	for _, field := range patch.Fields() {
		column, ok := profileFieldColumns[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProfileField, field)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, columnValue(patch[field]))
		argCount++
	}
	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, userID)

	query := fmt.Sprintf(
		`UPDATE profiles SET %s WHERE user_id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argCount, profileSelectColumns,
	)

	profile, err := scanProfile(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, profileWriteError(err)
	}
	return profile, nil
}

func columnValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []string:
		return pq.Array(val)
	case domain.Gender:
		return string(val)
	default:
		return val
	}
}
