package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	return m
}

func TestParseProfilePatch(t *testing.T) {
	patch, err := ParseProfilePatch(raw(t, `{
		"firstName": "Meera",
		"lastName": null,
		"gender": "Female",
		"dateOfBirth": "1995-08-20",
		"heightCm": 160,
		"partnerMinAge": 0,
		"hobbies": ["music", "travel"],
		"interests": null
	}`))
	require.NoError(t, err)

	assert.Equal(t, []ProfileField{
		FieldDateOfBirth, FieldFirstName, FieldGender, FieldHeightCm,
		FieldHobbies, FieldInterests, FieldLastName, FieldPartnerMinAge,
	}, patch.Fields())
	assert.Equal(t, "Meera", patch[FieldFirstName])
	assert.Nil(t, patch[FieldLastName].(*string))
	assert.Equal(t, GenderFemale, patch[FieldGender])
	assert.Equal(t, date(1995, time.August, 20), *patch[FieldDateOfBirth].(*time.Time))
	assert.Equal(t, 160, *patch[FieldHeightCm].(*int))
	assert.Equal(t, 0, *patch[FieldPartnerMinAge].(*int))
	assert.Equal(t, []string{"music", "travel"}, patch[FieldHobbies])
	assert.Equal(t, []string{}, patch[FieldInterests])
}

func TestParseProfilePatch_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"empty", `{}`, ErrEmptyProfilePatch},
		{"immutable id", `{"userId": "x"}`, ErrImmutableProfileField},
		{"immutable timestamp", `{"createdAt": "2024-01-01"}`, ErrImmutableProfileField},
		{"unknown key", `{"first_name": "Meera"}`, ErrUnknownProfileField},
		{"sql in key", `{"education = 'x'; --": "y"}`, ErrUnknownProfileField},
		{"null first name", `{"firstName": null}`, ErrInvalidFieldValue},
		{"short first name", `{"firstName": "M"}`, ErrInvalidFieldValue},
		{"bad gender", `{"gender": "female"}`, ErrInvalidFieldValue},
		{"bad date", `{"dateOfBirth": "20/08/1995"}`, ErrInvalidFieldValue},
		{"fractional number", `{"heightCm": 160.5}`, ErrInvalidFieldValue},
		{"zero height", `{"heightCm": 0}`, ErrInvalidFieldValue},
		{"negative age", `{"partnerMaxAge": -1}`, ErrInvalidFieldValue},
		{"string for number", `{"weightKg": "60"}`, ErrInvalidFieldValue},
		{"number for list", `{"photos": 3}`, ErrInvalidFieldValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfilePatch(raw(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProfilePatch_ApplyTo(t *testing.T) {
	education := "BTech"
	p := &Profile{FirstName: "Meera", Education: &education, Hobbies: []string{"music"}}

	patch, err := ParseProfilePatch(raw(t, `{"education": "MTech", "hobbies": [], "partnerMaxAge": 35}`))
	require.NoError(t, err)
	patch.ApplyTo(p)

	assert.Equal(t, "Meera", p.FirstName)
	require.NotNil(t, p.Education)
	assert.Equal(t, "MTech", *p.Education)
	assert.Equal(t, "BTech", education)
	assert.Empty(t, p.Hobbies)
	require.NotNil(t, p.PartnerMaxAge)
	assert.Equal(t, 35, *p.PartnerMaxAge)
}

func TestMutableProfileFields_DisjointFromImmutable(t *testing.T) {
	for _, field := range MutableProfileFields() {
		_, immutable := immutableProfileFields[string(field)]
		assert.False(t, immutable, field)
	}
	assert.Len(t, MutableProfileFields(), len(mutableProfileFields))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1995-08-20")
	require.NoError(t, err)
	assert.Equal(t, date(1995, time.August, 20), d)

	d, err = ParseDate("1995-08-20T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, 1995, d.Year())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)
}

func TestParseProfilePatch_ColumnLimits(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"height beyond integer column", `{"heightCm": 1e10}`},
		{"age beyond integer column", `{"partnerMinAge": 3000000000}`},
		{"distance beyond integer column", `{"partnerDistancePreferenceKm": 2147483648}`},
		{"marital status too long", `{"maritalStatus": "` + strings.Repeat("x", 51) + `"}`},
		{"smoking too long", `{"smoking": "` + strings.Repeat("y", 21) + `"}`},
		{"first name too long", `{"firstName": "` + strings.Repeat("a", 101) + `"}`},
		{"education too long", `{"education": "` + strings.Repeat("e", 256) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfilePatch(raw(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalidFieldValue)
		})
	}
}

func TestParseProfilePatch_AtColumnLimits(t *testing.T) {
	patch, err := ParseProfilePatch(raw(t, `{
		"partnerMaxHeight": 2147483647,
		"smoking": "`+strings.Repeat("y", 20)+`",
		"caste": "`+strings.Repeat("क", 100)+`"
	}`))
	require.NoError(t, err)

	assert.Equal(t, MaxColumnInt, *patch[FieldPartnerMaxHeight].(*int))
	assert.Len(t, *patch[FieldSmoking].(*string), 20)
	assert.Equal(t, 100, utf8.RuneCountInString(*patch[FieldCaste].(*string)))
}
