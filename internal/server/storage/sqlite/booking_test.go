package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

func createTestBooking(t *testing.T, ctx context.Context, s *Storage, travelerID, slotID string, guests int) *models.Booking {
	t.Helper()

	now := time.Now()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		TravelerID:      travelerID,
		SlotID:          slotID,
		Guests:          guests,
		ExperienceTitle: "Kigali city walk",
		PricePerGuest:   25,
		TotalPrice:      25 * float64(guests),
		Status:          models.BookingPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, s.CreateBooking(ctx, booking))

	return booking
}

func TestCreateBooking_DecrementsRemaining(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	travelerID := createTestUser(t, ctx, s, api.RoleTourist)
	exp := createTestExperience(t, ctx, s, guideID)
	slot := createTestSlot(t, ctx, s, exp.ID, 10)

	booking := createTestBooking(t, ctx, s, travelerID, slot.ID, 4)

	got, err := s.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, travelerID, got.TravelerID)
	assert.Equal(t, 4, got.Guests)
	assert.Equal(t, models.BookingPending, got.Status)
	assert.Equal(t, float64(100), got.TotalPrice)

	updated, err := s.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Remaining)
}

func TestCreateBooking_SlotFull(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	travelerID := createTestUser(t, ctx, s, api.RoleTourist)
	exp := createTestExperience(t, ctx, s, guideID)
	slot := createTestSlot(t, ctx, s, exp.ID, 3)

	createTestBooking(t, ctx, s, travelerID, slot.ID, 2)

	now := time.Now()
	over := &models.Booking{
		ID:         uuid.New().String(),
		TravelerID: travelerID,
		SlotID:     slot.ID,
		Guests:     2,
		Status:     models.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.CreateBooking(ctx, over)
	assert.ErrorIs(t, err, storage.ErrSlotFull)

	// неудачная попытка не трогает остаток
	updated, err := s.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Remaining)
}

func TestCreateBooking_MissingSlot(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	travelerID := createTestUser(t, ctx, s, api.RoleTourist)

	now := time.Now()
	booking := &models.Booking{
		ID:         uuid.New().String(),
		TravelerID: travelerID,
		SlotID:     uuid.New().String(),
		Guests:     1,
		Status:     models.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.CreateBooking(ctx, booking)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListBookings_Scopes(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	otherGuideID := createTestUser(t, ctx, s, api.RoleGuide)
	travelerID := createTestUser(t, ctx, s, api.RoleTourist)

	exp := createTestExperience(t, ctx, s, guideID)
	slot := createTestSlot(t, ctx, s, exp.ID, 10)
	otherExp := createTestExperience(t, ctx, s, otherGuideID)
	otherSlot := createTestSlot(t, ctx, s, otherExp.ID, 10)

	createTestBooking(t, ctx, s, travelerID, slot.ID, 2)
	createTestBooking(t, ctx, s, travelerID, otherSlot.ID, 1)

	byTraveler, err := s.ListBookingsByTraveler(ctx, travelerID)
	require.NoError(t, err)
	assert.Len(t, byTraveler, 2)

	bySlot, err := s.ListBookingsBySlot(ctx, slot.ID)
	require.NoError(t, err)
	assert.Len(t, bySlot, 1)

	byGuide, err := s.ListBookingsByGuide(ctx, guideID)
	require.NoError(t, err)
	assert.Len(t, byGuide, 1)

	all, err := s.ListAllBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateBookingStatus(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	travelerID := createTestUser(t, ctx, s, api.RoleTourist)
	exp := createTestExperience(t, ctx, s, guideID)
	slot := createTestSlot(t, ctx, s, exp.ID, 5)
	booking := createTestBooking(t, ctx, s, travelerID, slot.ID, 1)

	require.NoError(t, s.UpdateBookingStatus(ctx, booking.ID, models.BookingConfirmed))

	got, err := s.GetBookingByID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)

	err = s.UpdateBookingStatus(ctx, uuid.New().String(), models.BookingConfirmed)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteBooking_RestoresRemaining(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	travelerID := createTestUser(t, ctx, s, api.RoleTourist)
	exp := createTestExperience(t, ctx, s, guideID)
	slot := createTestSlot(t, ctx, s, exp.ID, 10)
	booking := createTestBooking(t, ctx, s, travelerID, slot.ID, 4)

	require.NoError(t, s.DeleteBooking(ctx, booking.ID))

	_, err := s.GetBookingByID(ctx, booking.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	updated, err := s.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Remaining)
}

func TestDeleteBooking_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.DeleteBooking(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
