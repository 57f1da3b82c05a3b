// internal/app/features/groups/users.go
package groups

import (
	"net/http"

	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"github.com/avelichko/groupmap/internal/app/system/timeouts"
	"github.com/avelichko/groupmap/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeGroupUsers handles GET /groups/my/users. Users come back in
// join order; locations are not part of the user JSON shape.
func (h *Handler) ServeGroupUsers(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, m.Claims.GroupID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if g == nil {
		httperr.Write(w, r, httperr.NotFound("no such group found"), h.Log)
		return
	}

	users := g.Users
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, users)
}

// ServeCurrentUser handles GET /groups/my/users/me. The guard already
// resolved the live record, so this is a context read, not a query.
func (h *Handler) ServeCurrentUser(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	writeJSON(w, m.User)
}

// ServeUserInfo handles GET /groups/my/users/{userID}.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	userID := chi.URLParam(r, "userID")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	u, err := h.Groups.FindUser(ctx, m.Claims.GroupID, userID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if u == nil {
		httperr.Write(w, r, httperr.NotFound("no such user found"), h.Log)
		return
	}
	writeJSON(w, u)
}

// HandleKickUser handles DELETE /groups/my/users/{userID} (admin only).
// The pulled user's credential stops resolving immediately; their
// structures stay behind with authorship intact.
func (h *Handler) HandleKickUser(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	userID := chi.URLParam(r, "userID")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	removed, err := h.Groups.PullUser(ctx, m.Claims.GroupID, userID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if !removed {
		httperr.Write(w, r, httperr.NotFound("no such user found"), h.Log)
		return
	}

	h.Log.Info("user kicked",
		zap.String("group_id", m.Claims.GroupID),
		zap.String("user_id", userID),
		zap.String("by", m.User.ID))
	writeJSON(w, struct{}{})
}

// HandleLeaveGroup handles DELETE /groups/my/users/me.
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	removed, err := h.Groups.PullUser(ctx, m.Claims.GroupID, m.User.ID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if !removed {
		httperr.Write(w, r, httperr.NotFound("no such user found"), h.Log)
		return
	}

	h.Log.Info("user left group",
		zap.String("group_id", m.Claims.GroupID),
		zap.String("user_id", m.User.ID))
	writeJSON(w, struct{}{})
}
