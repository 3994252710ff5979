package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
	"github.com/studio-hub/studio-hub-elite/pkg/logger"
	"github.com/studio-hub/studio-hub-elite/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATE COMMAND
// Exchanges a one-time session id with the identity provider, upserts the
// member by email, and issues a 7-day session. Previous sessions of the
// member are revoked.
// ══════════════════════════════════════════════════════════════════════════════

// AuthenticateCommand contains the one-time session id from the login flow.
type AuthenticateCommand struct {
	SessionID string
}

// Validate validates the command.
func (c AuthenticateCommand) Validate() error {
	if c.SessionID == "" {
		return shared.NewDomainError("member", "Authenticate", shared.ErrEmptyValue, "session_id is required")
	}
	return nil
}

// AuthenticateResult contains the member and the issued session.
type AuthenticateResult struct {
	User    *member.User
	Session *member.Session
	IsNew   bool
}

// AuthenticateHandler handles the AuthenticateCommand.
type AuthenticateHandler struct {
	identity    member.IdentityProvider
	members     member.Repository
	sessions    member.SessionRepository
	adminEmails map[string]struct{}
	log         *logger.Logger
}

// NewAuthenticateHandler creates a new AuthenticateHandler.
func NewAuthenticateHandler(
	identity member.IdentityProvider,
	members member.Repository,
	sessions member.SessionRepository,
	log *logger.Logger,
) *AuthenticateHandler {
	return &AuthenticateHandler{
		identity: identity,
		members:  members,
		sessions: sessions,
		log:      log.With(logger.Component("authenticate")),
	}
}

// WithAdminBootstrap promotes members whose email is in the list to admin
// on login. Comparison is case-insensitive.
func (h *AuthenticateHandler) WithAdminBootstrap(emails []string) *AuthenticateHandler {
	if len(emails) == 0 {
		return h
	}
	h.adminEmails = make(map[string]struct{}, len(emails))
	for _, e := range emails {
		h.adminEmails[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return h
}

// Handle executes the authenticate command.
func (h *AuthenticateHandler) Handle(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	profile, err := h.identity.ExchangeSession(ctx, cmd.SessionID)
	if err != nil {
		return nil, err
	}

	user, err := h.members.FindByEmail(ctx, profile.Email)
	isNew := false
	switch {
	case err == nil:
		user.Name = profile.Name
		user.Picture = profile.Picture
		if err := h.members.UpdateProfile(ctx, user); err != nil {
			return nil, fmt.Errorf("authenticate: refresh profile: %w", err)
		}
	case shared.IsNotFound(err):
		user, err = member.NewUser(profile.Email, profile.Name, profile.Picture)
		if err != nil {
			return nil, err
		}
		if err := h.members.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("authenticate: create member: %w", err)
		}
		isNew = true
		h.log.Info("member registered", logger.UserID(user.ID.String()))
	default:
		return nil, fmt.Errorf("authenticate: find member: %w", err)
	}

	if _, ok := h.adminEmails[user.Email]; ok && !user.IsAdmin {
		user.IsAdmin = true
		if err := h.members.UpdateProfile(ctx, user); err != nil {
			return nil, fmt.Errorf("authenticate: promote admin: %w", err)
		}
		h.log.Info("member promoted to admin", logger.UserID(user.ID.String()))
	}

	if err := h.sessions.DeleteByUser(ctx, user.ID); err != nil {
		h.log.Warn("revoking old sessions failed", logger.UserID(user.ID.String()), logger.Err(err))
	}

	session := member.NewSession(user.ID, profile.SessionToken)
	if err := h.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("authenticate: create session: %w", err)
	}

	return &AuthenticateResult{User: user, Session: session, IsNew: isNew}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LOGOUT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// LogoutHandler revokes a session by token.
type LogoutHandler struct {
	sessions member.SessionRepository
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(sessions member.SessionRepository) *LogoutHandler {
	return &LogoutHandler{sessions: sessions}
}

// Handle revokes the session. A missing token is a no-op.
func (h *LogoutHandler) Handle(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := h.sessions.Delete(ctx, token); err != nil && !shared.IsNotFound(err) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION RESOLUTION
// Looks up and validates the session for an incoming request, used by the
// HTTP auth middleware.
// ══════════════════════════════════════════════════════════════════════════════

// ResolveSessionHandler resolves a session token to its member.
type ResolveSessionHandler struct {
	sessions member.SessionRepository
	members  member.Repository
}

// NewResolveSessionHandler creates a new ResolveSessionHandler.
func NewResolveSessionHandler(sessions member.SessionRepository, members member.Repository) *ResolveSessionHandler {
	return &ResolveSessionHandler{sessions: sessions, members: members}
}

// Handle returns the authenticated member for the token.
func (h *ResolveSessionHandler) Handle(ctx context.Context, token string) (*member.User, error) {
	if token == "" {
		return nil, shared.ErrSessionNotFound
	}

	session, err := h.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(timeutil.Now()) {
		return nil, shared.ErrSessionExpired
	}

	return h.members.FindByID(ctx, session.UserID)
}
