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

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "testuser1",
		Email:        "testuser1@example.com",
		PasswordHash: "hash123",
		FirstName:    "Test",
		LastName:     "User",
		Role:         api.RoleTourist,
		IsActive:     true,
		CreatedAt:    time.Now(),
		LastLogin:    nil,
	}
	require.NoError(t, s.CreateUser(ctx, user))

	// Verify user was created
	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Username, retrieved.Username)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
	assert.Equal(t, api.RoleTourist, retrieved.Role)
	assert.True(t, retrieved.IsActive)
	assert.Nil(t, retrieved.LastLogin)
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user1 := &models.User{
		ID:           uuid.New().String(),
		Username:     "duplicate",
		Email:        "first@example.com",
		PasswordHash: "hash1",
		Role:         api.RoleTourist,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user1))

	user2 := &models.User{
		ID:           uuid.New().String(),
		Username:     "duplicate", // Same username
		Email:        "second@example.com",
		PasswordHash: "hash2",
		Role:         api.RoleTourist,
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, user2)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user1 := &models.User{
		ID:           uuid.New().String(),
		Username:     "first",
		Email:        "same@example.com",
		PasswordHash: "hash1",
		Role:         api.RoleGuide,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user1))

	user2 := &models.User{
		ID:           uuid.New().String(),
		Username:     "second",
		Email:        "same@example.com", // Same email
		PasswordHash: "hash2",
		Role:         api.RoleGuide,
		CreatedAt:    time.Now(),
	}
	err := s.CreateUser(ctx, user2)
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "findme",
		Email:        "findme@example.com",
		PasswordHash: "hash123",
		Role:         api.RoleGuide,
		IsActive:     true,
		CreatedAt:    time.Now(),
		LastLogin:    timePtr(time.Now()),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	tests := []struct {
		wantError error
		name      string
		username  string
	}{
		{
			name:      "get existing user",
			username:  "findme",
			wantError: nil,
		},
		{
			name:      "get non-existent user",
			username:  "notfound",
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrieved, err := s.GetUserByUsername(ctx, tt.username)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, retrieved)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, retrieved.ID)
				assert.Equal(t, api.RoleGuide, retrieved.Role)
				assert.NotNil(t, retrieved.LastLogin)
			}
		})
	}
}

func TestUserStorage_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     "mailuser",
		Email:        "mail@example.com",
		PasswordHash: "hash123",
		Role:         api.RoleTourist,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUserByEmail(ctx, "mail@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)

	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_ListUsers(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	createTestUser(t, ctx, s, api.RoleTourist)
	createTestUser(t, ctx, s, api.RoleGuide)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserStorage_UpdateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := uuid.New().String()
	user := &models.User{
		ID:           userID,
		Username:     "original",
		Email:        "original@example.com",
		PasswordHash: "hash1",
		Role:         api.RoleTourist,
		IsActive:     false,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	// активация после подтверждения email
	user.IsActive = true
	user.FirstName = "Updated"
	require.NoError(t, s.UpdateUser(ctx, user))

	retrieved, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, retrieved.IsActive)
	assert.Equal(t, "Updated", retrieved.FirstName)

	// update non-existent user
	missing := &models.User{ID: "nonexistent", Username: "foo", Email: "foo@example.com"}
	assert.ErrorIs(t, s.UpdateUser(ctx, missing), storage.ErrUserNotFound)
}

func TestUserStorage_DeleteUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s, api.RoleTourist)

	require.NoError(t, s.DeleteUser(ctx, userID))

	_, err := s.GetUserByID(ctx, userID)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	assert.ErrorIs(t, s.DeleteUser(ctx, "nonexistent"), storage.ErrUserNotFound)
}

func TestUserStorage_UpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s, api.RoleTourist)

	loginTime := time.Now()
	require.NoError(t, s.UpdateLastLogin(ctx, userID, loginTime))

	retrieved, err := s.GetUserByID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.LastLogin)
	// Compare times with 1 second tolerance
	assert.WithinDuration(t, loginTime, *retrieved.LastLogin, time.Second)

	assert.ErrorIs(t, s.UpdateLastLogin(ctx, "nonexistent", loginTime), storage.ErrUserNotFound)
}

// Helper function
func timePtr(t time.Time) *time.Time {
	return &t
}
