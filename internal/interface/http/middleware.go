package http

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/studio-hub/studio-hub-elite/internal/domain/member"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATION MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

const sessionCookieName = "session_token"

// sessionToken extracts the session token from the cookie, falling back
// to a bearer Authorization header.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// auth requires a valid session and stores the member in the request context.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r)
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		}

		user, err := s.deps.ResolveSession.Handle(r.Context(), token)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next(w, r.WithContext(ctx))
	}
}

// admin requires an admin session or a valid X-API-Key service key.
func (s *Server) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("X-API-Key"); key != "" && s.config.AdminAPIKeyHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(s.config.AdminAPIKeyHash), []byte(key)) == nil {
				next(w, r)
				return
			}
			writeJSONError(w, http.StatusForbidden, "forbidden", "Invalid API key")
			return
		}

		token := sessionToken(r)
		if token == "" {
			writeJSONError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
			return
		}

		user, err := s.deps.ResolveSession.Handle(r.Context(), token)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if !user.IsAdmin {
			writeJSONError(w, http.StatusForbidden, "forbidden", "Admin access required")
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next(w, r.WithContext(ctx))
	}
}

// currentUser returns the authenticated member stored by the auth middleware.
func currentUser(ctx context.Context) *member.User {
	user, _ := ctx.Value(contextKeyUser).(*member.User)
	return user
}
