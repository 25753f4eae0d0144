package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchPageSize caps a single match response. There is no cursor; callers
// always receive the most recent page.
const MatchPageSize = 20

// Defaults used when a bound pair is not fully set on the requester profile.
const (
	DefaultPartnerMinAge    = 18
	DefaultPartnerMaxAge    = 60
	DefaultPartnerMinHeight = 0
	DefaultPartnerMaxHeight = 300

	PreferenceAny = "Any"
)

// CandidateFilter is the effective filter applied to the profile store.
type CandidateFilter struct {
	TargetGender       Gender    `json:"targetGender"`
	MinAge             int       `json:"minAge"`
	MaxAge             int       `json:"maxAge"`
	MinHeight          int       `json:"minHeight"`
	MaxHeight          int       `json:"maxHeight"`
	MaritalPreference  string    `json:"maritalPreference"`
	ReligionPreference string    `json:"religionPreference"`
	ExcludeUserID      uuid.UUID `json:"-"`
}

// Matchable is false when no target gender could be derived for the requester.
func (f CandidateFilter) Matchable() bool {
	return f.TargetGender != ""
}

// Candidate is the public view of a profile returned as a potential match.
type Candidate struct {
	ProfileID       uuid.UUID `json:"profileId"`
	UserID          uuid.UUID `json:"userId"`
	FirstName       string    `json:"firstName"`
	LastName        *string   `json:"lastName"`
	Gender          Gender    `json:"gender"`
	Age             *int      `json:"age"`
	HeightCm        *int      `json:"heightCm"`
	Photos          []string  `json:"photos"`
	Education       *string   `json:"education"`
	PresentCountry  *string   `json:"presentCountry"`
	MaritalStatus   *string   `json:"maritalStatus"`
	FinancialStatus *string   `json:"financialStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewCandidate(p *Profile, now time.Time) *Candidate {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return &Candidate{
		ProfileID:       p.ID,
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Gender:          p.Gender,
		Age:             p.AgeAt(now),
		HeightCm:        p.HeightCm,
		Photos:          photos,
		Education:       p.Education,
		PresentCountry:  p.PresentCountry,
		MaritalStatus:   p.MaritalStatus,
		FinancialStatus: p.FinancialStatus,
		CreatedAt:       p.CreatedAt,
	}
}

// MatchResult is the response of one match resolution. Count is the size of
// Matches after the page cap, not a total.
type MatchResult struct {
	IsTeaser bool         `json:"isTeaser"`
	Count    int          `json:"count"`
	Matches  []*Candidate `json:"matches"`
}
