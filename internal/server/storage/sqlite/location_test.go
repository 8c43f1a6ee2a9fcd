package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
)

func TestSaveAndGetLocation(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	loc := &models.Location{
		ID:        uuid.New().String(),
		PlaceName: "Kigali, Rwanda",
		Latitude:  "-1.9441",
		Longitude: "30.0619",
		PlaceID:   "place-kigali",
	}
	require.NoError(t, s.SaveLocation(ctx, loc))

	got, err := s.GetLocationByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kigali, Rwanda", got.PlaceName)
	assert.Equal(t, "-1.9441", got.Latitude)
	assert.Equal(t, "place-kigali", got.PlaceID)
}

func TestSaveLocation_UpsertKeepsID(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	first := &models.Location{
		ID:        uuid.New().String(),
		PlaceName: "Kigali",
		Latitude:  "-1.9441",
		Longitude: "30.0619",
		PlaceID:   "place-kigali",
	}
	require.NoError(t, s.SaveLocation(ctx, first))

	// повторное сохранение того же place_id обновляет запись,
	// сохранив исходный ID
	second := &models.Location{
		ID:        uuid.New().String(),
		PlaceName: "Kigali, Rwanda",
		Latitude:  "-1.9500",
		Longitude: "30.0600",
		PlaceID:   "place-kigali",
	}
	require.NoError(t, s.SaveLocation(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := s.GetLocationByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kigali, Rwanda", got.PlaceName)
	assert.Equal(t, "-1.9500", got.Latitude)
}

func TestGetLocationByID_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetLocationByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListChoices_SeededCatalogs(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	// миграции заполняют справочники
	languages, err := s.ListChoices(ctx, "languages")
	require.NoError(t, err)
	assert.NotEmpty(t, languages)
	for _, option := range languages {
		assert.NotEmpty(t, option.ID)
		assert.NotEmpty(t, option.Name)
	}

	payments, err := s.ListChoices(ctx, "payments")
	require.NoError(t, err)
	assert.NotEmpty(t, payments)

	unknown, err := s.ListChoices(ctx, "colors")
	require.NoError(t, err)
	assert.Empty(t, unknown)
}
