package auth

import (
	"slices"

	"github.com/iudanet/urugendo/pkg/api"
)

// Decision определяет исход проверки доступа к защищенному экрану
type Decision int

// Возможные решения guard'а
const (
	// DecisionWait — сессия еще загружается: не пускать и не отказывать
	DecisionWait Decision = iota
	// DecisionAllow — доступ разрешен
	DecisionAllow
	// DecisionLogin — не аутентифицирован: на логин с возвратом обратно
	DecisionLogin
	// DecisionDenied — аутентифицирован, но роль не подходит: на главную,
	// не на логин
	DecisionDenied
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionAllow:
		return "allow"
	case DecisionLogin:
		return "login"
	case DecisionDenied:
		return "denied"
	}
	return "unknown"
}

// GuardResult — решение плюс путь возврата после логина
type GuardResult struct {
	Decision Decision
	// ReturnTo — исходно запрошенный путь, сохраняется при DecisionLogin
	ReturnTo string
}

// Check применяет контракт защищенного экрана к текущей сессии.
// Пустой allowedRoles означает "любой аутентифицированный пользователь".
func Check(session *Session, requestedPath string, allowedRoles ...api.Role) GuardResult {
	switch session.State() {
	case StateLoading:
		return GuardResult{Decision: DecisionWait}
	case StateAnonymous:
		return GuardResult{Decision: DecisionLogin, ReturnTo: requestedPath}
	}

	if len(allowedRoles) == 0 {
		return GuardResult{Decision: DecisionAllow}
	}

	user := session.User()
	if user != nil && slices.Contains(allowedRoles, user.Role) {
		return GuardResult{Decision: DecisionAllow}
	}

	return GuardResult{Decision: DecisionDenied}
}
