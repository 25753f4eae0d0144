package handler_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/domain"
	"github.com/google/uuid"
)

// memoryUsers is an in-process stand-in for the users table.
type memoryUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[uuid.UUID]*domain.User)}
}

func (s *memoryUsers) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *memoryUsers) GetByIdentifier(_ context.Context, idType domain.IdentifierType, identifier string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		var value *string
		if idType == domain.IdentifierEmail {
			value = u.Email
		} else {
			value = u.Phone
		}
		if value != nil && *value == identifier {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memoryUsers) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if (user.Email != nil && u.Email != nil && *u.Email == *user.Email) ||
			(user.Phone != nil && u.Phone != nil && *u.Phone == *user.Phone) {
			return domain.ErrUserAlreadyExists
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memoryUsers) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	return nil
}

func (s *memoryUsers) MarkVerified(_ context.Context, id uuid.UUID, idType domain.IdentifierType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if idType == domain.IdentifierEmail {
		u.IsEmailVerified = true
	} else {
		u.IsPhoneVerified = true
	}
	return nil
}

// memoryProfiles mirrors the SQL candidate query closely enough for
// end-to-end request tests.
type memoryProfiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile
	clock    time.Time
	queryErr error
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{
		profiles: make(map[uuid.UUID]*domain.Profile),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *memoryProfiles) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *memoryProfiles) seed(p *domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	s.profiles[p.UserID] = p
}

func (s *memoryProfiles) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memoryProfiles) CreateBasic(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.UserID]; ok {
		return domain.ErrProfileAlreadyExists
	}
	profile.ID = uuid.New()
	profile.CreatedAt = s.tick()
	profile.UpdatedAt = profile.CreatedAt
	copied := *profile
	s.profiles[profile.UserID] = &copied
	return nil
}

func (s *memoryProfiles) Upsert(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.ID = uuid.New()
		profile.CreatedAt = s.tick()
	}
	profile.UpdatedAt = s.tick()
	copied := *profile
	s.profiles[profile.UserID] = &copied
	return nil
}

func (s *memoryProfiles) UpdateFields(_ context.Context, userID uuid.UUID, patch domain.ProfilePatch) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	patch.ApplyTo(p)
	p.UpdatedAt = s.tick()
	copied := *p
	return &copied, nil
}

func (s *memoryProfiles) QueryCandidates(_ context.Context, filter domain.CandidateFilter, limit int) ([]*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	now := time.Now()
	var out []*domain.Profile
	for _, p := range s.profiles {
		if p.Gender != filter.TargetGender || p.UserID == filter.ExcludeUserID {
			continue
		}
		if p.DateOfBirth != nil {
			age := domain.YearsBetween(*p.DateOfBirth, now)
			if age < filter.MinAge || age > filter.MaxAge {
				continue
			}
		}
		if p.HeightCm != nil && (*p.HeightCm < filter.MinHeight || *p.HeightCm > filter.MaxHeight) {
			continue
		}
		if filter.MaritalPreference != domain.PreferenceAny &&
			(p.MaritalStatus == nil || *p.MaritalStatus != filter.MaritalPreference) {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	codes map[string]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{codes: make(map[string]string)}
}

func (n *recordingNotifier) SendEmailOTP(_ context.Context, email, otp string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[email] = otp
	return nil
}

func (n *recordingNotifier) SendSMSOTP(_ context.Context, phone, otp string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.codes[phone] = otp
	return nil
}

func (n *recordingNotifier) code(identifier string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.codes[identifier]
}
