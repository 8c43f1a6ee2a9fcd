package handlers

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/geocode"
	"github.com/iudanet/urugendo/internal/server/storage"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserStorage is an in-memory UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // id -> User
	createError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: map[string]*models.User{}}
}

func (m *mockUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserStorage) ListUsers(_ context.Context) ([]*models.User, error) {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		clone := *m.users[id]
		users = append(users, &clone)
	}
	return users, nil
}

func (m *mockUserStorage) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStorage) DeleteUser(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserStorage) UpdateLastLogin(_ context.Context, userID string, loginTime time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	u.LastLogin = &loginTime
	return nil
}

// mockTokenStorage is an in-memory TokenStorage for testing
type mockTokenStorage struct {
	tokens map[string]*models.RefreshToken
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: map[string]*models.RefreshToken{}}
}

func (m *mockTokenStorage) SaveRefreshToken(_ context.Context, token *models.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.tokens[token]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return rt, nil
}

func (m *mockTokenStorage) GetUserTokens(_ context.Context, userID string) ([]*models.RefreshToken, error) {
	var result []*models.RefreshToken
	for _, token := range m.tokens {
		if token.UserID == userID {
			result = append(result, token)
		}
	}
	return result, nil
}

func (m *mockTokenStorage) DeleteRefreshToken(_ context.Context, token string) error {
	if _, ok := m.tokens[token]; !ok {
		return storage.ErrTokenNotFound
	}
	delete(m.tokens, token)
	return nil
}

func (m *mockTokenStorage) DeleteUserTokens(_ context.Context, userID string) (int, error) {
	count := 0
	for key, token := range m.tokens {
		if token.UserID == userID {
			delete(m.tokens, key)
			count++
		}
	}
	return count, nil
}

func (m *mockTokenStorage) DeleteExpiredTokens(_ context.Context) (int, error) {
	count := 0
	now := time.Now()
	for key, token := range m.tokens {
		if token.ExpiresAt.Before(now) {
			delete(m.tokens, key)
			count++
		}
	}
	return count, nil
}

// mockExperienceStorage is an in-memory ExperienceStorage for testing
type mockExperienceStorage struct {
	experiences map[string]*models.Experience
	slots       map[string]*models.Slot
}

func newMockExperienceStorage() *mockExperienceStorage {
	return &mockExperienceStorage{
		experiences: map[string]*models.Experience{},
		slots:       map[string]*models.Slot{},
	}
}

func (m *mockExperienceStorage) CreateExperience(_ context.Context, exp *models.Experience) error {
	clone := *exp
	m.experiences[exp.ID] = &clone
	return nil
}

func (m *mockExperienceStorage) GetExperienceByID(_ context.Context, id string) (*models.Experience, error) {
	exp, ok := m.experiences[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *exp
	return &clone, nil
}

func (m *mockExperienceStorage) ListExperiences(
	_ context.Context,
	filter storage.ExperienceFilter,
) ([]*models.Experience, int, error) {
	ids := make([]string, 0, len(m.experiences))
	for id, exp := range m.experiences {
		if filter.ExpertiseName != "" {
			found := false
			for _, name := range exp.Expertise {
				if name == filter.ExpertiseName {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.experiences[ids[i]], m.experiences[ids[j]]
		switch filter.Ordering {
		case "title":
			return a.Title < b.Title
		case "-title":
			return a.Title > b.Title
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})

	total := len(ids)
	if filter.Offset > len(ids) {
		ids = nil
	} else {
		ids = ids[filter.Offset:]
	}
	if filter.Limit > 0 && len(ids) > filter.Limit {
		ids = ids[:filter.Limit]
	}

	items := make([]*models.Experience, 0, len(ids))
	for _, id := range ids {
		clone := *m.experiences[id]
		items = append(items, &clone)
	}
	return items, total, nil
}

func (m *mockExperienceStorage) UpdateExperience(_ context.Context, exp *models.Experience) error {
	if _, ok := m.experiences[exp.ID]; !ok {
		return storage.ErrNotFound
	}
	clone := *exp
	m.experiences[exp.ID] = &clone
	return nil
}

func (m *mockExperienceStorage) DeleteExperience(_ context.Context, id string) error {
	if _, ok := m.experiences[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.experiences, id)
	for slotID, slot := range m.slots {
		if slot.ExperienceID == id {
			delete(m.slots, slotID)
		}
	}
	return nil
}

func (m *mockExperienceStorage) CreateSlot(_ context.Context, slot *models.Slot) error {
	clone := *slot
	m.slots[slot.ID] = &clone
	return nil
}

func (m *mockExperienceStorage) GetSlotByID(_ context.Context, id string) (*models.Slot, error) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *slot
	return &clone, nil
}

func (m *mockExperienceStorage) ListSlots(_ context.Context, experienceID string) ([]*models.Slot, error) {
	var slots []*models.Slot
	for _, slot := range m.slots {
		if slot.ExperienceID == experienceID {
			clone := *slot
			slots = append(slots, &clone)
		}
	}
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Date+slots[i].StartTime < slots[j].Date+slots[j].StartTime
	})
	return slots, nil
}

func (m *mockExperienceStorage) UpdateSlot(_ context.Context, slot *models.Slot) error {
	if _, ok := m.slots[slot.ID]; !ok {
		return storage.ErrNotFound
	}
	clone := *slot
	m.slots[slot.ID] = &clone
	return nil
}

func (m *mockExperienceStorage) DeleteSlot(_ context.Context, id string) error {
	if _, ok := m.slots[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.slots, id)
	return nil
}

// mockBookingStorage is an in-memory BookingStorage for testing.
// Slot capacity is shared with the experience storage.
type mockBookingStorage struct {
	bookings    map[string]*models.Booking
	experiences *mockExperienceStorage
}

func newMockBookingStorage(experiences *mockExperienceStorage) *mockBookingStorage {
	return &mockBookingStorage{
		bookings:    map[string]*models.Booking{},
		experiences: experiences,
	}
}

func (m *mockBookingStorage) CreateBooking(_ context.Context, booking *models.Booking) error {
	slot, ok := m.experiences.slots[booking.SlotID]
	if !ok {
		return storage.ErrNotFound
	}
	if !slot.IsActive || slot.Remaining < booking.Guests {
		return storage.ErrSlotFull
	}
	slot.Remaining -= booking.Guests

	clone := *booking
	m.bookings[booking.ID] = &clone
	return nil
}

func (m *mockBookingStorage) GetBookingByID(_ context.Context, id string) (*models.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *booking
	return &clone, nil
}

func (m *mockBookingStorage) list(match func(*models.Booking) bool) []*models.Booking {
	var result []*models.Booking
	for _, booking := range m.bookings {
		if match(booking) {
			clone := *booking
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (m *mockBookingStorage) ListBookingsByTraveler(_ context.Context, travelerID string) ([]*models.Booking, error) {
	return m.list(func(b *models.Booking) bool { return b.TravelerID == travelerID }), nil
}

func (m *mockBookingStorage) ListBookingsBySlot(_ context.Context, slotID string) ([]*models.Booking, error) {
	return m.list(func(b *models.Booking) bool { return b.SlotID == slotID }), nil
}

func (m *mockBookingStorage) ListBookingsByGuide(_ context.Context, guideID string) ([]*models.Booking, error) {
	return m.list(func(b *models.Booking) bool {
		slot, ok := m.experiences.slots[b.SlotID]
		if !ok {
			return false
		}
		exp, ok := m.experiences.experiences[slot.ExperienceID]
		return ok && exp.GuideID == guideID
	}), nil
}

func (m *mockBookingStorage) ListAllBookings(_ context.Context) ([]*models.Booking, error) {
	return m.list(func(*models.Booking) bool { return true }), nil
}

func (m *mockBookingStorage) UpdateBookingStatus(_ context.Context, id string, status models.BookingStatus) error {
	booking, ok := m.bookings[id]
	if !ok {
		return storage.ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

func (m *mockBookingStorage) DeleteBooking(_ context.Context, id string) error {
	booking, ok := m.bookings[id]
	if !ok {
		return storage.ErrNotFound
	}
	if slot, ok := m.experiences.slots[booking.SlotID]; ok {
		slot.Remaining += booking.Guests
		if slot.Remaining > slot.Capacity {
			slot.Remaining = slot.Capacity
		}
	}
	delete(m.bookings, id)
	return nil
}

// mockProfileStorage is an in-memory ProfileStorage for testing
type mockProfileStorage struct {
	tourists map[string]*models.TouristProfile // user_id -> profile
	guides   map[string]*models.GuideProfile
}

func newMockProfileStorage() *mockProfileStorage {
	return &mockProfileStorage{
		tourists: map[string]*models.TouristProfile{},
		guides:   map[string]*models.GuideProfile{},
	}
}

func (m *mockProfileStorage) CreateTouristProfile(_ context.Context, profile *models.TouristProfile) error {
	if _, ok := m.tourists[profile.UserID]; ok {
		return storage.ErrProfileExists
	}
	clone := *profile
	m.tourists[profile.UserID] = &clone
	return nil
}

func (m *mockProfileStorage) CreateGuideProfile(_ context.Context, profile *models.GuideProfile) error {
	if _, ok := m.guides[profile.UserID]; ok {
		return storage.ErrProfileExists
	}
	clone := *profile
	m.guides[profile.UserID] = &clone
	return nil
}

func (m *mockProfileStorage) GetTouristProfile(_ context.Context, userID string) (*models.TouristProfile, error) {
	profile, ok := m.tourists[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (m *mockProfileStorage) GetGuideProfile(_ context.Context, userID string) (*models.GuideProfile, error) {
	profile, ok := m.guides[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (m *mockProfileStorage) ListTouristProfiles(_ context.Context) ([]*models.TouristProfile, error) {
	var result []*models.TouristProfile
	for _, profile := range m.tourists {
		clone := *profile
		result = append(result, &clone)
	}
	return result, nil
}

func (m *mockProfileStorage) ListGuideProfiles(_ context.Context) ([]*models.GuideProfile, error) {
	var result []*models.GuideProfile
	for _, profile := range m.guides {
		clone := *profile
		result = append(result, &clone)
	}
	return result, nil
}

func (m *mockProfileStorage) UpdateTouristProfile(_ context.Context, profile *models.TouristProfile) error {
	if _, ok := m.tourists[profile.UserID]; !ok {
		return storage.ErrNotFound
	}
	clone := *profile
	m.tourists[profile.UserID] = &clone
	return nil
}

func (m *mockProfileStorage) UpdateGuideProfile(_ context.Context, profile *models.GuideProfile) error {
	if _, ok := m.guides[profile.UserID]; !ok {
		return storage.ErrNotFound
	}
	clone := *profile
	m.guides[profile.UserID] = &clone
	return nil
}

func (m *mockProfileStorage) DeleteProfile(_ context.Context, userID string) error {
	if _, ok := m.tourists[userID]; ok {
		delete(m.tourists, userID)
		return nil
	}
	if _, ok := m.guides[userID]; ok {
		delete(m.guides, userID)
		return nil
	}
	return storage.ErrNotFound
}

// mockReviewStorage is an in-memory ReviewStorage for testing
type mockReviewStorage struct {
	reviews map[string]*models.Review
}

func newMockReviewStorage() *mockReviewStorage {
	return &mockReviewStorage{reviews: map[string]*models.Review{}}
}

func (m *mockReviewStorage) CreateReview(_ context.Context, review *models.Review) error {
	clone := *review
	m.reviews[review.ID] = &clone
	return nil
}

func (m *mockReviewStorage) GetReviewByID(_ context.Context, id string) (*models.Review, error) {
	review, ok := m.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *review
	return &clone, nil
}

func (m *mockReviewStorage) ListReviews(_ context.Context) ([]*models.Review, error) {
	var result []*models.Review
	for _, review := range m.reviews {
		clone := *review
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockReviewStorage) ListReviewsByExperience(_ context.Context, experienceID string) ([]*models.Review, error) {
	var result []*models.Review
	for _, review := range m.reviews {
		if review.ExperienceID == experienceID {
			clone := *review
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockReviewStorage) UpdateReview(_ context.Context, review *models.Review) error {
	if _, ok := m.reviews[review.ID]; !ok {
		return storage.ErrNotFound
	}
	clone := *review
	m.reviews[review.ID] = &clone
	return nil
}

func (m *mockReviewStorage) DeleteReview(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

// mockLocationStorage is an in-memory LocationStorage for testing
type mockLocationStorage struct {
	locations map[string]*models.Location
	choices   map[string][]*models.ChoiceOption
}

func newMockLocationStorage() *mockLocationStorage {
	return &mockLocationStorage{
		locations: map[string]*models.Location{},
		choices:   map[string][]*models.ChoiceOption{},
	}
}

func (m *mockLocationStorage) SaveLocation(_ context.Context, loc *models.Location) error {
	for _, existing := range m.locations {
		if existing.PlaceID == loc.PlaceID {
			existing.PlaceName = loc.PlaceName
			existing.Latitude = loc.Latitude
			existing.Longitude = loc.Longitude
			loc.ID = existing.ID
			return nil
		}
	}
	clone := *loc
	m.locations[loc.ID] = &clone
	return nil
}

func (m *mockLocationStorage) GetLocationByID(_ context.Context, id string) (*models.Location, error) {
	loc, ok := m.locations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *loc
	return &clone, nil
}

func (m *mockLocationStorage) ListChoices(_ context.Context, kind string) ([]*models.ChoiceOption, error) {
	return m.choices[kind], nil
}

// mockGeocoder returns a fixed result or error
type mockGeocoder struct {
	result *models.Location
	err    error
}

func (m *mockGeocoder) Geocode(context.Context, string) (*models.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

var _ geocode.Geocoder = (*mockGeocoder)(nil)
