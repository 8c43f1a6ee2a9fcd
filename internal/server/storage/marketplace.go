package storage

import (
	"context"

	"github.com/iudanet/urugendo/internal/models"
)

// ExperienceStorage defines interface for experiences and their slots
type ExperienceStorage interface {
	// CreateExperience stores a new experience
	CreateExperience(ctx context.Context, exp *models.Experience) error

	// GetExperienceByID retrieves experience by ID
	// Returns ErrNotFound if it doesn't exist
	GetExperienceByID(ctx context.Context, id string) (*models.Experience, error)

	// ListExperiences returns experiences matching the filter,
	// ordered and paginated. Total is the unpaginated match count.
	ListExperiences(ctx context.Context, filter ExperienceFilter) (items []*models.Experience, total int, err error)

	// UpdateExperience replaces experience fields
	// Returns ErrNotFound if it doesn't exist
	UpdateExperience(ctx context.Context, exp *models.Experience) error

	// DeleteExperience deletes experience and its slots
	// Returns ErrNotFound if it doesn't exist
	DeleteExperience(ctx context.Context, id string) error

	// CreateSlot stores a new slot for an experience
	CreateSlot(ctx context.Context, slot *models.Slot) error

	// GetSlotByID retrieves slot by ID
	// Returns ErrNotFound if it doesn't exist
	GetSlotByID(ctx context.Context, id string) (*models.Slot, error)

	// ListSlots returns all slots of an experience
	ListSlots(ctx context.Context, experienceID string) ([]*models.Slot, error)

	// UpdateSlot replaces slot fields
	// Returns ErrNotFound if it doesn't exist
	UpdateSlot(ctx context.Context, slot *models.Slot) error

	// DeleteSlot deletes slot by ID
	// Returns ErrNotFound if it doesn't exist
	DeleteSlot(ctx context.Context, id string) error
}

// ExperienceFilter задает фильтрацию и пагинацию списка experiences
type ExperienceFilter struct {
	Ordering      string // "title", "-title", "created_at", "-created_at"
	ExpertiseName string // фильтр по имени направления
	Offset        int
	Limit         int // 0 — без ограничения
}

// BookingStorage defines interface for bookings
type BookingStorage interface {
	// CreateBooking stores a booking and decrements the slot's remaining
	// capacity in the same transaction.
	// Returns ErrSlotFull if the slot cannot fit the requested guests.
	CreateBooking(ctx context.Context, booking *models.Booking) error

	// GetBookingByID retrieves booking by ID
	// Returns ErrNotFound if it doesn't exist
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)

	// ListBookingsByTraveler returns bookings made by a traveler
	ListBookingsByTraveler(ctx context.Context, travelerID string) ([]*models.Booking, error)

	// ListBookingsBySlot returns bookings of a slot
	ListBookingsBySlot(ctx context.Context, slotID string) ([]*models.Booking, error)

	// ListBookingsByGuide returns bookings of all slots belonging to
	// the guide's experiences
	ListBookingsByGuide(ctx context.Context, guideID string) ([]*models.Booking, error)

	// ListAllBookings returns every booking (admin)
	ListAllBookings(ctx context.Context) ([]*models.Booking, error)

	// UpdateBookingStatus changes the booking status
	// Returns ErrNotFound if it doesn't exist
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error

	// DeleteBooking deletes booking and returns its guests to the slot
	// Returns ErrNotFound if it doesn't exist
	DeleteBooking(ctx context.Context, id string) error
}

// ProfileStorage defines interface for role-shaped profiles
type ProfileStorage interface {
	// CreateTouristProfile stores a tourist profile
	// Returns ErrProfileExists if the user already has one
	CreateTouristProfile(ctx context.Context, profile *models.TouristProfile) error

	// CreateGuideProfile stores a guide profile
	// Returns ErrProfileExists if the user already has one
	CreateGuideProfile(ctx context.Context, profile *models.GuideProfile) error

	// GetTouristProfile retrieves tourist profile by user ID
	// Returns ErrNotFound if it doesn't exist
	GetTouristProfile(ctx context.Context, userID string) (*models.TouristProfile, error)

	// GetGuideProfile retrieves guide profile by user ID
	// Returns ErrNotFound if it doesn't exist
	GetGuideProfile(ctx context.Context, userID string) (*models.GuideProfile, error)

	// ListTouristProfiles returns all tourist profiles
	ListTouristProfiles(ctx context.Context) ([]*models.TouristProfile, error)

	// ListGuideProfiles returns all guide profiles
	ListGuideProfiles(ctx context.Context) ([]*models.GuideProfile, error)

	// UpdateTouristProfile replaces tourist profile fields
	// Returns ErrNotFound if it doesn't exist
	UpdateTouristProfile(ctx context.Context, profile *models.TouristProfile) error

	// UpdateGuideProfile replaces guide profile fields
	// Returns ErrNotFound if it doesn't exist
	UpdateGuideProfile(ctx context.Context, profile *models.GuideProfile) error

	// DeleteProfile deletes the user's profile of either shape
	// Returns ErrNotFound if the user has no profile
	DeleteProfile(ctx context.Context, userID string) error
}

// ReviewStorage defines interface for reviews
type ReviewStorage interface {
	// CreateReview stores a review
	CreateReview(ctx context.Context, review *models.Review) error

	// GetReviewByID retrieves review by ID
	// Returns ErrNotFound if it doesn't exist
	GetReviewByID(ctx context.Context, id string) (*models.Review, error)

	// ListReviews returns all reviews
	ListReviews(ctx context.Context) ([]*models.Review, error)

	// ListReviewsByExperience returns reviews of an experience
	ListReviewsByExperience(ctx context.Context, experienceID string) ([]*models.Review, error)

	// UpdateReview replaces review fields
	// Returns ErrNotFound if it doesn't exist
	UpdateReview(ctx context.Context, review *models.Review) error

	// DeleteReview deletes review by ID
	// Returns ErrNotFound if it doesn't exist
	DeleteReview(ctx context.Context, id string) error
}

// LocationStorage defines interface for saved locations and choice catalogs
type LocationStorage interface {
	// SaveLocation stores a geocoded location, replacing an existing
	// record with the same provider place ID
	SaveLocation(ctx context.Context, loc *models.Location) error

	// GetLocationByID retrieves location by ID
	// Returns ErrNotFound if it doesn't exist
	GetLocationByID(ctx context.Context, id string) (*models.Location, error)

	// ListChoices returns catalog options of the given kind
	// (languages, payments, travel_preferences, ...)
	ListChoices(ctx context.Context, kind string) ([]*models.ChoiceOption, error)
}
