package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/internal/server/storage"
	"github.com/iudanet/urugendo/pkg/api"
)

func TestCreateAndGetExperience(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	exp := createTestExperience(t, ctx, s, guideID)

	got, err := s.GetExperienceByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.ID, got.ID)
	assert.Equal(t, guideID, got.GuideID)
	assert.Equal(t, "Kigali city walk", got.Title)
	// списковые поля выживают round trip
	assert.Equal(t, []string{"Culture"}, got.Expertise)
	assert.Equal(t, []string{"English"}, got.Languages)
	assert.Equal(t, []string{}, got.Photos)
}

func TestGetExperienceByID_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetExperienceByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListExperiences_FilterAndPagination(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)

	for i := 0; i < 5; i++ {
		exp := &models.Experience{
			ID:        uuid.New().String(),
			GuideID:   guideID,
			Title:     fmt.Sprintf("Walk %d", i),
			Expertise: []string{"Culture"},
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, s.CreateExperience(ctx, exp))
	}
	// одна запись с другим направлением
	food := &models.Experience{
		ID:        uuid.New().String(),
		GuideID:   guideID,
		Title:     "Food tour",
		Expertise: []string{"Food"},
		CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateExperience(ctx, food))

	// фильтр по имени направления
	items, total, err := s.ListExperiences(ctx, storage.ExperienceFilter{ExpertiseName: "Food"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, food.ID, items[0].ID)

	// пагинация: total считается без limit
	items, total, err = s.ListExperiences(ctx, storage.ExperienceFilter{
		ExpertiseName: "Culture",
		Limit:         2,
		Offset:        4,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, items, 1)
}

func TestListExperiences_Ordering(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)

	for _, title := range []string{"Bravo", "Alpha", "Charlie"} {
		exp := &models.Experience{
			ID:        uuid.New().String(),
			GuideID:   guideID,
			Title:     title,
			CreatedAt: time.Now(),
		}
		require.NoError(t, s.CreateExperience(ctx, exp))
	}

	items, _, err := s.ListExperiences(ctx, storage.ExperienceFilter{Ordering: "title"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Alpha", items[0].Title)
	assert.Equal(t, "Charlie", items[2].Title)

	items, _, err = s.ListExperiences(ctx, storage.ExperienceFilter{Ordering: "-title"})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Charlie", items[0].Title)
}

func TestUpdateExperience(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	exp := createTestExperience(t, ctx, s, guideID)

	exp.Title = "Updated walk"
	exp.Expertise = []string{"Culture", "History"}
	require.NoError(t, s.UpdateExperience(ctx, exp))

	got, err := s.GetExperienceByID(ctx, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated walk", got.Title)
	assert.Equal(t, []string{"Culture", "History"}, got.Expertise)
}

func TestUpdateExperience_NotFound(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.UpdateExperience(context.Background(), &models.Experience{ID: uuid.New().String()})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteExperience_CascadesSlots(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	exp := createTestExperience(t, ctx, s, guideID)
	slot := createTestSlot(t, ctx, s, exp.ID, 5)

	require.NoError(t, s.DeleteExperience(ctx, exp.ID))

	_, err := s.GetExperienceByID(ctx, exp.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetSlotByID(ctx, slot.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSlotCRUD(t *testing.T) {
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	ctx := context.Background()
	guideID := createTestUser(t, ctx, s, api.RoleGuide)
	exp := createTestExperience(t, ctx, s, guideID)
	slot := createTestSlot(t, ctx, s, exp.ID, 8)

	got, err := s.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, exp.ID, got.ExperienceID)
	assert.Equal(t, 8, got.Capacity)
	assert.Equal(t, 8, got.Remaining)
	assert.True(t, got.IsActive)

	got.Capacity = 10
	got.Remaining = 10
	got.Price = 40
	require.NoError(t, s.UpdateSlot(ctx, got))

	updated, err := s.GetSlotByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Capacity)
	assert.Equal(t, float64(40), updated.Price)

	slots, err := s.ListSlots(ctx, exp.ID)
	require.NoError(t, err)
	assert.Len(t, slots, 1)

	require.NoError(t, s.DeleteSlot(ctx, slot.ID))
	_, err = s.GetSlotByID(ctx, slot.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
