package cli

import (
	"fmt"
	"strings"

	clientapi "github.com/iudanet/urugendo/internal/client/api"
	"github.com/iudanet/urugendo/internal/client/auth"
	"github.com/iudanet/urugendo/internal/client/iocli"
	"github.com/iudanet/urugendo/internal/client/translate"
	"github.com/iudanet/urugendo/pkg/api"
)

// Cli связывает команды терминального клиента с сервисами
type Cli struct {
	io          iocli.IO
	apiClient   *clientapi.Client
	authService *auth.Service
	translator  *translate.Service
	lang        string // целевой язык вывода, "" — без перевода
}

func New(io iocli.IO, apiClient *clientapi.Client, authService *auth.Service, translator *translate.Service, lang string) *Cli {
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		authService: authService,
		translator:  translator,
		lang:        lang,
	}
}

// requireRole проверяет доступ к команде через session guard
func (c *Cli) requireRole(command string, roles ...api.Role) error {
	result := auth.Check(c.authService.Session(), command, roles...)
	switch result.Decision {
	case auth.DecisionAllow:
		return nil
	case auth.DecisionLogin:
		return fmt.Errorf("not authenticated. Please run 'urugendo login' first")
	case auth.DecisionDenied:
		names := make([]string, len(roles))
		for i, role := range roles {
			names[i] = string(role)
		}
		return fmt.Errorf("access denied: '%s' requires role %s", command, strings.Join(names, " or "))
	}
	return fmt.Errorf("session is still loading, try again")
}

func PrintUsage() {
	fmt.Println("Urugendo Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  urugendo [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH      Path to local session database (default: urugendo-client.db)")
	fmt.Println("  --lang CODE    Display language, e.g. fr or sw (default: no translation)")
	fmt.Println()
	fmt.Println("Translation provider (for --lang) is configured via environment:")
	fmt.Println("  URUGENDO_TRANSLATOR_ENDPOINT, URUGENDO_TRANSLATOR_KEY, URUGENDO_TRANSLATOR_REGION")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                      Register new account (Tourist or Guide)")
	fmt.Println("  login                         Login with email or username")
	fmt.Println("  logout                        Logout and forget the session")
	fmt.Println("  status                        Show authentication status")
	fmt.Println("  whoami                        Show current user from the server")
	fmt.Println("  experiences list              List published experiences")
	fmt.Println("  experiences get <id>          Show experience details with slots")
	fmt.Println("  experiences create            Create an experience (guides only)")
	fmt.Println("  experiences delete <id>       Delete an experience (guides only)")
	fmt.Println("  bookings list                 List your bookings")
	fmt.Println("  bookings upcoming             List upcoming bookings")
	fmt.Println("  bookings past                 List past bookings")
	fmt.Println("  bookings create <slot-id>     Book a slot")
	fmt.Println("  bookings cancel <id>          Cancel a booking")
	fmt.Println("  profile show                  Show your profile")
	fmt.Println("  reviews list <experience-id>  List reviews of an experience")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  urugendo register")
	fmt.Println("  urugendo login")
	fmt.Println("  urugendo --lang fr experiences list")
	fmt.Println("  urugendo bookings create 4e9c9f5e-bb6a-4a3c-9a74-0fb1e2a37f10")
	fmt.Println("  urugendo --server https://api.urugendo.example login")
}
