package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
	"unicode/utf8"
)

// ProfileField is the logical name of a mutable profile attribute as sent by
// clients in a partial update.
type ProfileField string

const (
	FieldFirstName                   ProfileField = "firstName"
	FieldLastName                    ProfileField = "lastName"
	FieldContact                     ProfileField = "contact"
	FieldGender                      ProfileField = "gender"
	FieldDateOfBirth                 ProfileField = "dateOfBirth"
	FieldProfileCreatedFor           ProfileField = "profileCreatedFor"
	FieldHeightCm                    ProfileField = "heightCm"
	FieldWeightKg                    ProfileField = "weightKg"
	FieldCaste                       ProfileField = "caste"
	FieldMaritalStatus               ProfileField = "maritalStatus"
	FieldEducation                   ProfileField = "education"
	FieldPresentCountry              ProfileField = "presentCountry"
	FieldFinancialStatus             ProfileField = "financialStatus"
	FieldDietPreference              ProfileField = "dietPreference"
	FieldSmoking                     ProfileField = "smoking"
	FieldDrinking                    ProfileField = "drinking"
	FieldPhotos                      ProfileField = "photos"
	FieldHobbies                     ProfileField = "hobbies"
	FieldInterests                   ProfileField = "interests"
	FieldPartnerMinAge               ProfileField = "partnerMinAge"
	FieldPartnerMaxAge               ProfileField = "partnerMaxAge"
	FieldPartnerMinHeight            ProfileField = "partnerMinHeight"
	FieldPartnerMaxHeight            ProfileField = "partnerMaxHeight"
	FieldPartnerMaritalPreference    ProfileField = "partnerMaritalPreference"
	FieldPartnerReligionPreference   ProfileField = "partnerReligionPreference"
	FieldPartnerDistancePreferenceKm ProfileField = "partnerDistancePreferenceKm"
)

type fieldKind int

const (
	kindRequiredString fieldKind = iota
	kindOptionalString
	kindGender
	kindDate
	kindPositiveInt
	kindNonNegativeInt
	kindStringList
)

// MaxColumnInt is the largest value an INTEGER column holds.
const MaxColumnInt = math.MaxInt32

type fieldRule struct {
	kind   fieldKind
	maxLen int
}

// mutableProfileFields is the exhaustive set of keys accepted by a partial
// update. Anything else is rejected. maxLen mirrors the VARCHAR width of the
// column and counts characters.
var mutableProfileFields = map[ProfileField]fieldRule{
	FieldFirstName:                   {kindRequiredString, 100},
	FieldLastName:                    {kindOptionalString, 100},
	FieldContact:                     {kindOptionalString, 50},
	FieldGender:                      {kind: kindGender},
	FieldDateOfBirth:                 {kind: kindDate},
	FieldProfileCreatedFor:           {kindOptionalString, 50},
	FieldHeightCm:                    {kind: kindPositiveInt},
	FieldWeightKg:                    {kind: kindPositiveInt},
	FieldCaste:                       {kindOptionalString, 100},
	FieldMaritalStatus:               {kindOptionalString, 50},
	FieldEducation:                   {kindOptionalString, 255},
	FieldPresentCountry:              {kindOptionalString, 100},
	FieldFinancialStatus:             {kindOptionalString, 100},
	FieldDietPreference:              {kindOptionalString, 50},
	FieldSmoking:                     {kindOptionalString, 20},
	FieldDrinking:                    {kindOptionalString, 20},
	FieldPhotos:                      {kind: kindStringList},
	FieldHobbies:                     {kind: kindStringList},
	FieldInterests:                   {kind: kindStringList},
	FieldPartnerMinAge:               {kind: kindNonNegativeInt},
	FieldPartnerMaxAge:               {kind: kindNonNegativeInt},
	FieldPartnerMinHeight:            {kind: kindNonNegativeInt},
	FieldPartnerMaxHeight:            {kind: kindNonNegativeInt},
	FieldPartnerMaritalPreference:    {kindOptionalString, 100},
	FieldPartnerReligionPreference:   {kindOptionalString, 100},
	FieldPartnerDistancePreferenceKm: {kind: kindNonNegativeInt},
}

var immutableProfileFields = map[string]struct{}{
	"profileId": {},
	"userId":    {},
	"createdAt": {},
	"updatedAt": {},
}

// MutableProfileFields lists every patchable field in a stable order.
func MutableProfileFields() []ProfileField {
	fields := make([]ProfileField, 0, len(mutableProfileFields))
	for f := range mutableProfileFields {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// ProfilePatch holds decoded values keyed by field. Values are string,
// *string, Gender, *time.Time, *int or []string depending on the field.
type ProfilePatch map[ProfileField]interface{}

// Fields returns the patched fields in a stable order.
func (p ProfilePatch) Fields() []ProfileField {
	fields := make([]ProfileField, 0, len(p))
	for f := range p {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// ParseProfilePatch decodes a raw JSON object into a typed patch.
func ParseProfilePatch(raw map[string]json.RawMessage) (ProfilePatch, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyProfilePatch
	}

	patch := make(ProfilePatch, len(raw))
	for key, value := range raw {
		if _, ok := immutableProfileFields[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrImmutableProfileField, key)
		}
		field := ProfileField(key)
		rule, ok := mutableProfileFields[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProfileField, key)
		}
		decoded, err := decodeFieldValue(rule, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFieldValue, key, err)
		}
		patch[field] = decoded
	}
	return patch, nil
}

func isNull(value json.RawMessage) bool {
	return len(bytes.TrimSpace(value)) == 0 || bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func checkLength(s string, maxLen int) error {
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		return fmt.Errorf("must be at most %d characters", maxLen)
	}
	return nil
}

func decodeFieldValue(rule fieldRule, value json.RawMessage) (interface{}, error) {
	kind := rule.kind
	switch kind {
	case kindRequiredString:
		var s string
		if isNull(value) {
			return nil, fmt.Errorf("value is required")
		}
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, err
		}
		if utf8.RuneCountInString(s) < 2 {
			return nil, fmt.Errorf("must be at least 2 characters")
		}
		if err := checkLength(s, rule.maxLen); err != nil {
			return nil, err
		}
		return s, nil

	case kindOptionalString:
		if isNull(value) {
			return (*string)(nil), nil
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, err
		}
		if err := checkLength(s, rule.maxLen); err != nil {
			return nil, err
		}
		return &s, nil

	case kindGender:
		var g Gender
		if err := json.Unmarshal(value, &g); err != nil {
			return nil, err
		}
		if !g.IsValid() {
			return nil, fmt.Errorf("must be one of Male, Female, Other")
		}
		return g, nil

	case kindDate:
		if isNull(value) {
			return (*time.Time)(nil), nil
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, err
		}
		t, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		return &t, nil

	case kindPositiveInt, kindNonNegativeInt:
		if isNull(value) {
			return (*int)(nil), nil
		}
		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, err
		}
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("must be a whole number")
		}
		if n > MaxColumnInt {
			return nil, fmt.Errorf("must be at most %d", MaxColumnInt)
		}
		if n < 0 {
			return nil, fmt.Errorf("must not be negative")
		}
		i := int(n)
		if kind == kindPositiveInt && i == 0 {
			return nil, fmt.Errorf("must be positive")
		}
		return &i, nil

	case kindStringList:
		if isNull(value) {
			return []string{}, nil
		}
		var list []string
		if err := json.Unmarshal(value, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("unsupported field kind")
}

// ParseDate accepts a calendar date (2006-01-02) or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format")
	}
	return t, nil
}

// ApplyTo writes the patched values onto p.
func (patch ProfilePatch) ApplyTo(p *Profile) {
	for field, value := range patch {
		switch field {
		case FieldFirstName:
			p.FirstName = value.(string)
		case FieldLastName:
			p.LastName = value.(*string)
		case FieldContact:
			p.Contact = value.(*string)
		case FieldGender:
			p.Gender = value.(Gender)
		case FieldDateOfBirth:
			p.DateOfBirth = value.(*time.Time)
		case FieldProfileCreatedFor:
			p.ProfileCreatedFor = value.(*string)
		case FieldHeightCm:
			p.HeightCm = value.(*int)
		case FieldWeightKg:
			p.WeightKg = value.(*int)
		case FieldCaste:
			p.Caste = value.(*string)
		case FieldMaritalStatus:
			p.MaritalStatus = value.(*string)
		case FieldEducation:
			p.Education = value.(*string)
		case FieldPresentCountry:
			p.PresentCountry = value.(*string)
		case FieldFinancialStatus:
			p.FinancialStatus = value.(*string)
		case FieldDietPreference:
			p.DietPreference = value.(*string)
		case FieldSmoking:
			p.Smoking = value.(*string)
		case FieldDrinking:
			p.Drinking = value.(*string)
		case FieldPhotos:
			p.Photos = value.([]string)
		case FieldHobbies:
			p.Hobbies = value.([]string)
		case FieldInterests:
			p.Interests = value.([]string)
		case FieldPartnerMinAge:
			p.PartnerMinAge = value.(*int)
		case FieldPartnerMaxAge:
			p.PartnerMaxAge = value.(*int)
		case FieldPartnerMinHeight:
			p.PartnerMinHeight = value.(*int)
		case FieldPartnerMaxHeight:
			p.PartnerMaxHeight = value.(*int)
		case FieldPartnerMaritalPreference:
			p.PartnerMaritalPreference = value.(*string)
		case FieldPartnerReligionPreference:
			p.PartnerReligionPreference = value.(*string)
		case FieldPartnerDistancePreferenceKm:
			p.PartnerDistancePreferenceKm = value.(*int)
		}
	}
}
