package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepository) QueryCandidates(ctx context.Context, filter domain.CandidateFilter, limit int) ([]*domain.Profile, error) {
	args := m.Called(ctx, filter, limit)
	if p := args.Get(0); p != nil {
		return p.([]*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProfileRepository) CreateBasic(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockProfileRepository) UpdateFields(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error) {
	args := m.Called(ctx, userID, patch)
	if p := args.Get(0); p != nil {
		return p.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func intPtr(v int) *int { return &v }

func rawPatch(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return raw
}

func validFullRequest() *RegisterFullProfileRequest {
	return &RegisterFullProfileRequest{
		FirstName:               "Ananya",
		Contact:                 "+919876543210",
		Gender:                  domain.GenderFemale,
		DateOfBirth:             "1995-03-21",
		Height:                  165,
		Weight:                  55,
		Caste:                   "Iyer",
		MaritalStatus:           "Never Married",
		Education:               "MBA",
		PresentCountry:          "India",
		FinancialStatus:         "Stable",
		Photos:                  []string{"https://cdn.example.com/a.jpg"},
		AgeRange:                &RangeRequest{Min: intPtr(28), Max: intPtr(34)},
		HeightRange:             &RangeRequest{Min: intPtr(170), Max: intPtr(190)},
		MaritalStatusPreference: "Never Married",
		ReligionPreference:      "Hindu",
		DietPreference:          "Vegetarian",
		Smoking:                 "No",
		Drinking:                "Occasionally",
	}
}

func TestCreateBasicProfile_Success(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	userID := uuid.New()

	repo.On("CreateBasic", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == userID && p.FirstName == "Rahul" && p.Gender == domain.GenderMale
	})).Return(nil).Once()

	profile, err := uc.CreateBasicProfile(context.Background(), userID, &CreateBasicProfileRequest{
		FirstName: "Rahul",
		Gender:    domain.GenderMale,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.NotNil(t, profile.Photos)
	repo.AssertExpectations(t)
}

func TestCreateBasicProfile_AlreadyExists(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())

	repo.On("CreateBasic", mock.Anything, mock.Anything).Return(domain.ErrProfileAlreadyExists).Once()

	_, err := uc.CreateBasicProfile(context.Background(), uuid.New(), &CreateBasicProfileRequest{
		FirstName: "Rahul",
		Gender:    domain.GenderMale,
	})

	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestGetMyProfile_NotFound(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	userID := uuid.New()

	repo.On("GetByUserID", mock.Anything, userID).Return(nil, domain.ErrProfileNotFound).Once()

	_, err := uc.GetMyProfile(context.Background(), userID)

	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestRegisterFullProfile_Success(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	userID := uuid.New()

	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.UserID == userID &&
			*p.PartnerMinAge == 28 && *p.PartnerMaxAge == 34 &&
			*p.PartnerMinHeight == 170 && *p.PartnerMaxHeight == 190 &&
			*p.HeightCm == 165 &&
			*p.PartnerMaritalPreference == "Never Married" &&
			p.DateOfBirth.Year() == 1995 &&
			p.Hobbies != nil
	})).Return(nil).Once()

	profile, err := uc.RegisterFullProfile(context.Background(), userID, validFullRequest())

	require.NoError(t, err)
	assert.True(t, profile.HasPartnerPreferences())
	repo.AssertExpectations(t)
}

func TestRegisterFullProfile_InvertedRange(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())

	req := validFullRequest()
	req.AgeRange = &RangeRequest{Min: intPtr(40), Max: intPtr(30)}

	_, err := uc.RegisterFullProfile(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidPreferenceRange)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRegisterFullProfile_BadDate(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())

	req := validFullRequest()
	req.DateOfBirth = "21/03/1995"

	_, err := uc.RegisterFullProfile(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, domain.ErrInvalidFieldValue)
}

func TestUpdateMyProfile_Success(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	userID := uuid.New()

	existing := &domain.Profile{UserID: userID, FirstName: "Rahul", Gender: domain.GenderMale}
	updated := &domain.Profile{UserID: userID, FirstName: "Rahul", Gender: domain.GenderMale, PartnerMinAge: intPtr(24), PartnerMaxAge: intPtr(30)}

	repo.On("GetByUserID", mock.Anything, userID).Return(existing, nil).Once()
	repo.On("UpdateFields", mock.Anything, userID, mock.MatchedBy(func(p domain.ProfilePatch) bool {
		return len(p) == 2 &&
			*p[domain.FieldPartnerMinAge].(*int) == 24 &&
			*p[domain.FieldPartnerMaxAge].(*int) == 30
	})).Return(updated, nil).Once()

	profile, err := uc.UpdateMyProfile(context.Background(), userID, rawPatch(t, `{"partnerMinAge": 24, "partnerMaxAge": 30}`))

	require.NoError(t, err)
	assert.Equal(t, updated, profile)
	assert.Nil(t, existing.PartnerMinAge)
	repo.AssertExpectations(t)
}

func TestUpdateMyProfile_RejectsUnknownAndImmutableFields(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())

	_, err := uc.UpdateMyProfile(context.Background(), uuid.New(), rawPatch(t, `{"is_admin": true}`))
	assert.ErrorIs(t, err, domain.ErrUnknownProfileField)

	_, err = uc.UpdateMyProfile(context.Background(), uuid.New(), rawPatch(t, `{"userId": "x"}`))
	assert.ErrorIs(t, err, domain.ErrImmutableProfileField)

	_, err = uc.UpdateMyProfile(context.Background(), uuid.New(), rawPatch(t, `{}`))
	assert.ErrorIs(t, err, domain.ErrEmptyProfilePatch)

	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMyProfile_MergedRangeMustStayValid(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	userID := uuid.New()

	existing := &domain.Profile{UserID: userID, PartnerMinAge: intPtr(25), PartnerMaxAge: intPtr(30)}
	repo.On("GetByUserID", mock.Anything, userID).Return(existing, nil).Once()

	_, err := uc.UpdateMyProfile(context.Background(), userID, rawPatch(t, `{"partnerMinAge": 35}`))

	assert.ErrorIs(t, err, domain.ErrInvalidPreferenceRange)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateMyProfile_StoreFailure(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	userID := uuid.New()

	repo.On("GetByUserID", mock.Anything, userID).Return(&domain.Profile{UserID: userID}, nil).Once()
	repo.On("UpdateFields", mock.Anything, userID, mock.Anything).Return(nil, errors.New("deadlock detected")).Once()

	_, err := uc.UpdateMyProfile(context.Background(), userID, rawPatch(t, `{"education": "PhD"}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update profile")
}

func TestUpdateMyProfile_StoreRejectionIsNotWrapped(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	userID := uuid.New()

	repo.On("GetByUserID", mock.Anything, userID).Return(&domain.Profile{UserID: userID}, nil).Once()
	repo.On("UpdateFields", mock.Anything, userID, mock.Anything).Return(nil, domain.ErrInvalidPreferenceRange).Once()

	_, err := uc.UpdateMyProfile(context.Background(), userID, rawPatch(t, `{"partnerMaxAge": 30}`))

	assert.Equal(t, domain.ErrInvalidPreferenceRange, err)
}

func TestRegisterFullProfile_StoreRejectionIsNotWrapped(t *testing.T) {
	repo := new(mockProfileRepository)
	uc := NewProfileUseCase(repo, zap.NewNop())
	rejected := fmt.Errorf("%w: value too long", domain.ErrInvalidFieldValue)

	repo.On("Upsert", mock.Anything, mock.Anything).Return(rejected).Once()

	_, err := uc.RegisterFullProfile(context.Background(), uuid.New(), validFullRequest())

	assert.Equal(t, rejected, err)
}
