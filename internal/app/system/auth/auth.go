// internal/app/system/auth/auth.go

// Package auth implements the bearer credential codec and the
// authorization guard.
//
// A credential only proves which {group, user} a request speaks for.
// The guard re-resolves that pair against the live group document on
// every request, so a kicked user's still-valid signature stops
// working the moment their embedded user record is pulled, and the
// admin flag a handler sees is always current, never the snapshot from
// issuance time.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"github.com/avelichko/groupmap/internal/domain/models"
	"go.uber.org/zap"
)

// UserFinder resolves a single embedded user from live group state.
// Implemented by the group store; returns nil (not an error) when the
// group or the user is absent.
type UserFinder interface {
	FindUser(ctx context.Context, groupID, userID string) (*models.User, error)
}

// Member is the acting identity for a request: the verified claims plus
// the live user record they resolved to.
type Member struct {
	Claims *Claims
	User   *models.User
}

type ctxKey string

const memberKey ctxKey = "member"

// CurrentMember returns the request's resolved member, if the guard ran.
func CurrentMember(r *http.Request) (*Member, bool) {
	m, ok := r.Context().Value(memberKey).(*Member)
	return m, ok
}

// WithTestMember injects a member into the request context, bypassing
// the middleware. For handler tests only.
func WithTestMember(r *http.Request, m *Member) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), memberKey, m))
}

// Guard composes the token codec with live user resolution.
type Guard struct {
	tokens *TokenManager
	users  UserFinder
	log    *zap.Logger
}

// NewGuard builds a Guard over the given codec and user finder.
func NewGuard(tokens *TokenManager, users UserFinder, logger *zap.Logger) *Guard {
	return &Guard{tokens: tokens, users: users, log: logger}
}

// RequireMember verifies the bearer token and re-resolves the subject
// against current group state. 401 when the token is missing or
// invalid, and equally when the live user no longer exists — a kicked
// user and a deleted group both collapse to "credential no longer
// resolves". On success the member is placed in the request context.
func (g *Guard) RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			httperr.Write(w, r, httperr.Unauthenticated("missing bearer token"), g.log)
			return
		}

		claims, err := g.tokens.Verify(raw)
		if err != nil {
			httperr.Write(w, r, httperr.Unauthenticated("invalid token"), g.log)
			return
		}

		user, err := g.users.FindUser(r.Context(), claims.GroupID, claims.UserID)
		if err != nil {
			httperr.Write(w, r, err, g.log)
			return
		}
		if user == nil {
			httperr.Write(w, r, httperr.Unauthenticated("user is no longer a member of the group"), g.log)
			return
		}

		m := &Member{Claims: claims, User: user}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), memberKey, m)))
	})
}

// RequireAdmin is RequireMember plus a role check on the live user
// record. Trusting the live record (not the claim) is what strips a
// kicked-and-rejoined user of a stale admin bit.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return g.RequireMember(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, _ := CurrentMember(r)
		if m == nil || !m.User.IsAdmin {
			httperr.Write(w, r, httperr.Forbidden("admin rights required"), g.log)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(h[len(prefix):]), true
}
