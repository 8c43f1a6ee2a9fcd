package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/urugendo/pkg/api"
)

func sessionInState(state State, role api.Role) *Session {
	s := NewSession(&memStorage{})
	switch state {
	case StateAnonymous:
		s.resolveAnonymous()
	case StateAuthenticated:
		s.setUser(api.User{ID: "u-1", Username: "alice", Role: role})
	}
	return s
}

func TestCheck_LoadingWaits(t *testing.T) {
	s := sessionInState(StateLoading, "")

	result := Check(s, "/bookings", api.RoleTourist)
	assert.Equal(t, DecisionWait, result.Decision)
}

func TestCheck_AnonymousGoesToLoginWithReturnPath(t *testing.T) {
	s := sessionInState(StateAnonymous, "")

	result := Check(s, "/bookings", api.RoleTourist)
	assert.Equal(t, DecisionLogin, result.Decision)
	assert.Equal(t, "/bookings", result.ReturnTo)
}

func TestCheck_AuthenticatedAnyRole(t *testing.T) {
	s := sessionInState(StateAuthenticated, api.RoleTourist)

	result := Check(s, "/settings")
	assert.Equal(t, DecisionAllow, result.Decision)
}

func TestCheck_MatchingRoleAllowed(t *testing.T) {
	s := sessionInState(StateAuthenticated, api.RoleGuide)

	result := Check(s, "/experiences/new", api.RoleGuide, api.RoleAdmin)
	assert.Equal(t, DecisionAllow, result.Decision)
}

func TestCheck_WrongRoleDeniedNotLogin(t *testing.T) {
	s := sessionInState(StateAuthenticated, api.RoleTourist)

	// аутентифицированный турист на админском экране: на главную, не на логин
	result := Check(s, "/admin/users", api.RoleAdmin)
	assert.Equal(t, DecisionDenied, result.Decision)
	assert.Empty(t, result.ReturnTo)
}
