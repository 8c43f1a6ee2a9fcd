package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/urugendo/internal/models"
	"github.com/iudanet/urugendo/pkg/api"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage, role api.Role) string {
	t.Helper()

	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Username:     "user-" + userID[:8],
		Email:        userID[:8] + "@example.com",
		PasswordHash: "hash",
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	return userID
}

func createTestExperience(t *testing.T, ctx context.Context, s *Storage, guideID string) *models.Experience {
	t.Helper()

	exp := &models.Experience{
		ID:          uuid.New().String(),
		GuideID:     guideID,
		Title:       "Kigali city walk",
		Description: "A walk through the old town",
		Expertise:   []string{"Culture"},
		Photos:      []string{},
		Languages:   []string{"English"},
		CreatedAt:   time.Now(),
	}
	require.NoError(t, s.CreateExperience(ctx, exp))

	return exp
}

func createTestSlot(t *testing.T, ctx context.Context, s *Storage, experienceID string, capacity int) *models.Slot {
	t.Helper()

	slot := &models.Slot{
		ID:           uuid.New().String(),
		ExperienceID: experienceID,
		Date:         "2026-10-01",
		StartTime:    "09:00",
		EndTime:      "12:00",
		Capacity:     capacity,
		Remaining:    capacity,
		Price:        25,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateSlot(ctx, slot))

	return slot
}
