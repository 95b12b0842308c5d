package httpx

import (
	domainauth "github.com/dictate-io/dictate/internal/domain/auth"
	"github.com/dictate-io/dictate/internal/service"
)

// GuardKind selects the access policy applied to a route.
type GuardKind int

const (
	// GuardNone renders unconditionally. Public routes.
	GuardNone GuardKind = iota

	// GuardAuthenticated admits a logged-in user or a valid share token.
	GuardAuthenticated

	// GuardLoggedIn admits only a full login. Share tokens do not count.
	GuardLoggedIn

	// GuardLoggedInRedirect admits a logged-in user and sends logged-out
	// visitors away: to the configured external URL when one is set, to the
	// login page otherwise. Used on the home route.
	GuardLoggedInRedirect
)

func (k GuardKind) String() string {
	switch k {
	case GuardNone:
		return "none"
	case GuardAuthenticated:
		return "authenticated"
	case GuardLoggedIn:
		return "logged-in"
	case GuardLoggedInRedirect:
		return "logged-in-redirect"
	default:
		return "unknown"
	}
}

// DecisionKind is the effect a guard asks the router to perform.
type DecisionKind int

const (
	// DecisionRender serves the route's own view.
	DecisionRender DecisionKind = iota

	// DecisionLoading serves the loading view while auth state settles.
	DecisionLoading

	// DecisionNavigate redirects within the application. Location is an
	// app-absolute path; the router prefixes the configured base path.
	DecisionNavigate

	// DecisionExternalRedirect redirects to an absolute URL outside the
	// application. The location is used verbatim.
	DecisionExternalRedirect
)

// Decision is the outcome of evaluating a guard against the request's auth
// and config snapshots.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// loginPath is where denied guards send the visitor.
const loginPath = "/login"

// EvaluateGuard decides what happens to a request, as a pure function of the
// guard kind and the snapshots taken at the start of the request. It performs
// no I/O; the router applies the returned effect exactly once.
//
// An unsettled auth snapshot always defers rather than denies, so a slow
// session lookup can never bounce a logged-in user to the login page.
func EvaluateGuard(kind GuardKind, auth domainauth.AuthData, cfg service.ConfigSnapshot) Decision {
	switch kind {
	case GuardAuthenticated:
		if auth.IsLoading {
			return Decision{Kind: DecisionLoading}
		}
		if auth.Authorized() {
			return Decision{Kind: DecisionRender}
		}
		return Decision{Kind: DecisionNavigate, Location: loginPath}

	case GuardLoggedIn:
		if auth.IsLoading {
			return Decision{Kind: DecisionLoading}
		}
		if auth.IsLoggedIn {
			return Decision{Kind: DecisionRender}
		}
		return Decision{Kind: DecisionNavigate, Location: loginPath}

	case GuardLoggedInRedirect:
		if auth.IsLoading {
			return Decision{Kind: DecisionLoading}
		}
		if auth.IsLoggedIn {
			return Decision{Kind: DecisionRender}
		}
		// Logged out with the config still undecided: render optimistically
		// instead of flashing a redirect that the loaded config might not
		// want. A late-loading config therefore never interrupts the view.
		if cfg.IsLoading {
			return Decision{Kind: DecisionRender}
		}
		if url := cfg.Config.LoggedOutRedirectURL; url != "" {
			return Decision{Kind: DecisionExternalRedirect, Location: url}
		}
		return Decision{Kind: DecisionNavigate, Location: loginPath}

	default:
		return Decision{Kind: DecisionRender}
	}
}
