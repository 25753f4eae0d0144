package domain

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type Profile struct {
	ID                uuid.UUID  `json:"profileId" db:"profile_id"`
	UserID            uuid.UUID  `json:"userId" db:"user_id"`
	FirstName         string     `json:"firstName" db:"first_name"`
	LastName          *string    `json:"lastName" db:"last_name"`
	Contact           *string    `json:"contact" db:"contact"`
	Gender            Gender     `json:"gender" db:"gender"`
	DateOfBirth       *time.Time `json:"dateOfBirth" db:"date_of_birth"`
	ProfileCreatedFor *string    `json:"profileCreatedFor" db:"profile_created_for"`

	HeightCm        *int    `json:"heightCm" db:"height_cm"`
	WeightKg        *int    `json:"weightKg" db:"weight_kg"`
	Caste           *string `json:"caste" db:"caste"`
	MaritalStatus   *string `json:"maritalStatus" db:"marital_status"`
	Education       *string `json:"education" db:"education"`
	PresentCountry  *string `json:"presentCountry" db:"present_country"`
	FinancialStatus *string `json:"financialStatus" db:"financial_status"`

	DietPreference *string `json:"dietPreference" db:"diet_preference"`
	Smoking        *string `json:"smoking" db:"smoking"`
	Drinking       *string `json:"drinking" db:"drinking"`

	Photos    []string `json:"photos" db:"photos"`
	Hobbies   []string `json:"hobbies" db:"hobbies"`
	Interests []string `json:"interests" db:"interests"`

	PartnerMinAge               *int    `json:"partnerMinAge" db:"partner_min_age"`
	PartnerMaxAge               *int    `json:"partnerMaxAge" db:"partner_max_age"`
	PartnerMinHeight            *int    `json:"partnerMinHeight" db:"partner_min_height"`
	PartnerMaxHeight            *int    `json:"partnerMaxHeight" db:"partner_max_height"`
	PartnerMaritalPreference    *string `json:"partnerMaritalPreference" db:"partner_marital_preference"`
	PartnerReligionPreference   *string `json:"partnerReligionPreference" db:"partner_religion_preference"`
	PartnerDistancePreferenceKm *int    `json:"partnerDistancePreferenceKm" db:"partner_distance_preference_km"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AgeAt returns the age in whole years on the given day, or nil when the
// date of birth is unknown.
func (p *Profile) AgeAt(now time.Time) *int {
	if p.DateOfBirth == nil {
		return nil
	}
	age := YearsBetween(*p.DateOfBirth, now)
	return &age
}

// YearsBetween counts full calendar years from birth to now.
func YearsBetween(birth, now time.Time) int {
	birth = birth.UTC()
	now = now.UTC()
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// HasPartnerPreferences reports whether the owner has ever set explicit
// partner preferences. Only the minimum age is consulted.
func (p *Profile) HasPartnerPreferences() bool {
	return p.PartnerMinAge != nil
}

// ValidatePreferences rejects inverted bound pairs. A pair with a missing side
// is left alone; the resolver substitutes defaults for it.
func (p *Profile) ValidatePreferences() error {
	if p.PartnerMinAge != nil && p.PartnerMaxAge != nil && *p.PartnerMinAge > *p.PartnerMaxAge {
		return ErrInvalidPreferenceRange
	}
	if p.PartnerMinHeight != nil && p.PartnerMaxHeight != nil && *p.PartnerMinHeight > *p.PartnerMaxHeight {
		return ErrInvalidPreferenceRange
	}
	return nil
}
