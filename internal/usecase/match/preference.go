package match

import (
	"strings"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
)

// ResolvePreferences turns the requester's stored profile into the effective
// candidate filter. Each bound pair is taken from the profile only when both
// sides are set; otherwise the whole default pair applies, so a real minimum
// is never combined with a default maximum. The second return value reports
// teaser mode: the requester has never set a partner minimum age.
func ResolvePreferences(requester *domain.Profile) (domain.CandidateFilter, bool) {
	filter := domain.CandidateFilter{
		TargetGender:       targetGender(requester.Gender),
		MinAge:             domain.DefaultPartnerMinAge,
		MaxAge:             domain.DefaultPartnerMaxAge,
		MinHeight:          domain.DefaultPartnerMinHeight,
		MaxHeight:          domain.DefaultPartnerMaxHeight,
		MaritalPreference:  domain.PreferenceAny,
		ReligionPreference: domain.PreferenceAny,
		ExcludeUserID:      requester.UserID,
	}

	if requester.PartnerMinAge != nil && requester.PartnerMaxAge != nil {
		filter.MinAge = *requester.PartnerMinAge
		filter.MaxAge = *requester.PartnerMaxAge
	}
	if requester.PartnerMinHeight != nil && requester.PartnerMaxHeight != nil {
		filter.MinHeight = *requester.PartnerMinHeight
		filter.MaxHeight = *requester.PartnerMaxHeight
	}
	if pref := requester.PartnerMaritalPreference; pref != nil && strings.TrimSpace(*pref) != "" {
		filter.MaritalPreference = strings.TrimSpace(*pref)
	}
	if pref := requester.PartnerReligionPreference; pref != nil && strings.TrimSpace(*pref) != "" {
		filter.ReligionPreference = strings.TrimSpace(*pref)
	}

	return filter, !requester.HasPartnerPreferences()
}

// targetGender is binary: Other (or an unset gender) has no target and is
// not matched.
func targetGender(g domain.Gender) domain.Gender {
	switch g {
	case domain.GenderMale:
		return domain.GenderFemale
	case domain.GenderFemale:
		return domain.GenderMale
	default:
		return ""
	}
}
