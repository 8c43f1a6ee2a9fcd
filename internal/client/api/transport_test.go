package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/urugendo/pkg/api"
)

// fakeTokens — in-memory TokenSource для тестов транспорта
type fakeTokens struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (f *fakeTokens) AccessToken(_ context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access
}

func (f *fakeTokens) RefreshToken(_ context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refresh
}

func (f *fakeTokens) SetAccessToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = token
	return nil
}

func (f *fakeTokens) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access = ""
	f.refresh = ""
	f.cleared = true
	return nil
}

func (f *fakeTokens) wasCleared() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cleared
}

func TestAuthTransport_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.User{Username: "alice"})
	}))
	t.Cleanup(server.Close)

	tokens := &fakeTokens{access: "access-1", refresh: "refresh-1"}
	client := NewClient(server.URL, WithTokenSource(tokens))

	user, err := client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Bearer access-1", gotAuth)
}

func TestAuthTransport_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	hasHeader := true
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasHeader = r.Header["Authorization"]
		_ = json.NewEncoder(w).Encode([]api.ChoiceOption{})
	}))
	t.Cleanup(server.Close)

	tokens := &fakeTokens{}
	client := NewClient(server.URL, WithTokenSource(tokens))

	_, err := client.GetChoices(context.Background(), "languages")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.False(t, hasHeader)
}

func TestAuthTransport_RefreshesOnceAndReplays(t *testing.T) {
	var meCalls, refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me/", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer access-new" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "token expired"})
			return
		}
		_ = json.NewEncoder(w).Encode(api.User{Username: "alice"})
	})
	mux.HandleFunc("POST /users/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var req api.RefreshRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh-1", req.Refresh)
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "access-new"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := &fakeTokens{access: "access-stale", refresh: "refresh-1"}
	client := NewClient(server.URL, WithTokenSource(tokens))

	user, err := client.GetCurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	// исходный запрос + ровно один повтор
	assert.Equal(t, int64(2), meCalls.Load())
	assert.Equal(t, int64(1), refreshCalls.Load())

	// новый токен персистится
	assert.Equal(t, "access-new", tokens.AccessToken(context.Background()))
	assert.False(t, tokens.wasCleared())
}

func TestAuthTransport_SecondUnauthorizedNotRetried(t *testing.T) {
	var meCalls, refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me/", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "token expired"})
	})
	mux.HandleFunc("POST /users/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "access-new"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := &fakeTokens{access: "access-stale", refresh: "refresh-1"}
	client := NewClient(server.URL, WithTokenSource(tokens))

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)

	// повторный 401 отдан как есть: ни второго refresh, ни третьего запроса
	assert.Equal(t, int64(2), meCalls.Load())
	assert.Equal(t, int64(1), refreshCalls.Load())
}

func TestAuthTransport_NoRefreshTokenClearsSession(t *testing.T) {
	var refreshCalls atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "token expired"})
	})
	mux.HandleFunc("POST /users/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := &fakeTokens{access: "access-stale"}
	client := NewClient(server.URL, WithTokenSource(tokens))

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)

	assert.True(t, tokens.wasCleared())
	assert.Equal(t, int64(0), refreshCalls.Load())
}

func TestAuthTransport_RefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "token expired"})
	})
	mux.HandleFunc("POST /users/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "refresh token expired"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := &fakeTokens{access: "access-stale", refresh: "refresh-stale"}
	client := NewClient(server.URL, WithTokenSource(tokens))

	_, err := client.GetCurrentUser(context.Background())
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "refresh token expired", authErr.Message)

	assert.True(t, tokens.wasCleared())
}

func TestAuthTransport_ReplaysRequestBody(t *testing.T) {
	var bodies []string
	var mu sync.Mutex

	mux := http.NewServeMux()
	mux.HandleFunc("POST /bookings/", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		mu.Lock()
		bodies = append(bodies, req.SlotID)
		mu.Unlock()

		if r.Header.Get("Authorization") != "Bearer access-new" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.Booking{ID: "b-1"})
	})
	mux.HandleFunc("POST /users/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.RefreshResponse{Access: "access-new"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	tokens := &fakeTokens{access: "access-stale", refresh: "refresh-1"}
	client := NewClient(server.URL, WithTokenSource(tokens))

	booking, err := client.CreateBooking(context.Background(), api.CreateBookingRequest{SlotID: "slot-7", Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, "b-1", booking.ID)

	// тело запроса дошло целиком оба раза
	assert.Equal(t, []string{"slot-7", "slot-7"}, bodies)
}
