package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/dictate-io/dictate/internal/domain/auth"
	"github.com/dictate-io/dictate/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider    ports.AuthProvider
	Sessions    ports.SessionStore
	Roles       ports.RoleMapper
	ShareTokens ports.ShareTokenRepository
	Logger      *slog.Logger
}

// AuthService orchestrates authentication flows: provider exchange, role
// mapping, session persistence, and per-request resolution of the auth
// snapshot the route guards consume.
type AuthService struct {
	provider    ports.AuthProvider
	sessions    ports.SessionStore
	roles       ports.RoleMapper
	shareTokens ports.ShareTokenRepository
	logger      *slog.Logger
	now         func() time.Time
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider:    opts.Provider,
		sessions:    opts.Sessions,
		roles:       opts.Roles,
		shareTokens: opts.ShareTokens,
		logger:      logger,
		now:         time.Now,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin completes an authentication flow by exchanging the code for an
// identity, mapping roles, and persisting a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	session := domainauth.Session{
		ID:        uuid.New().String(),
		UserID:    identity.UserID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Role:      s.roles.Map(identity.Groups),
		ExpiresAt: identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{Session: session}, nil
}

// GetSession retrieves a session by ID, deleting it if expired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if s.now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ResolveAuthInput carries the request-scoped credentials for building an
// auth snapshot: the session cookie value and, for document routes, an
// optional share token paired with the document it claims access to.
type ResolveAuthInput struct {
	SessionID  string
	ShareToken string
	DocumentID string
}

// ResolveAuthResult contains the auth snapshot and, when the session lookup
// succeeded, the resolved session for handlers that need the identity.
type ResolveAuthResult struct {
	Data    domainauth.AuthData
	Session *domainauth.Session
}

// ResolveAuthData builds the per-request auth snapshot. The snapshot is
// assembled once from a single session lookup and (when present) a single
// share token lookup, so callers never see a half-updated combination.
//
// A lookup cut short by the request deadline marks the snapshot as loading;
// every other failure resolves to logged-out. Share tokens are verified
// against the document they were issued for and never count as a login.
func (s *AuthService) ResolveAuthData(ctx context.Context, in ResolveAuthInput) ResolveAuthResult {
	var out ResolveAuthResult

	if in.SessionID != "" {
		session, err := s.GetSession(ctx, in.SessionID)
		switch {
		case err == nil:
			out.Data.IsLoggedIn = true
			out.Session = session
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			out.Data.IsLoading = true
		case errors.Is(err, errSessionExpired):
			// expired sessions are plain logged-out, no log noise
		default:
			s.logger.Debug("session lookup failed, treating as logged out", "error", err)
		}
	}

	if in.ShareToken != "" && in.DocumentID != "" && s.shareTokens != nil {
		token, err := s.shareTokens.GetByToken(ctx, in.ShareToken, in.DocumentID)
		switch {
		case err == nil:
			out.Data.HasShareToken = !token.Expired(s.now())
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			out.Data.IsLoading = true
		default:
			s.logger.Debug("share token lookup failed", "document_id", in.DocumentID, "error", err)
		}
	}

	return out
}
