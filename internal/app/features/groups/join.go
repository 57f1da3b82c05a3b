// internal/app/features/groups/join.go
package groups

import (
	"encoding/json"
	"net/http"

	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"github.com/avelichko/groupmap/internal/app/system/passcode"
	"github.com/avelichko/groupmap/internal/app/system/random"
	"github.com/avelichko/groupmap/internal/app/system/sanitize"
	"github.com/avelichko/groupmap/internal/app/system/timeouts"
	"github.com/avelichko/groupmap/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// joinResponse carries the new member's id and their bearer credential.
type joinResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// HandleJoinGroup handles POST /groups/{inviteCode}.
//
// The admin role is decided here, once, by passcode match:
//   - no passcode in the body  → plain member
//   - matching passcode       → admin
//   - anything else           → 401, never a silent downgrade to member
//
// New members start with a hidden, zeroed location.
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	inviteCode := chi.URLParam(r, "inviteCode")

	var in groupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperr.Write(w, r, httperr.BadRequest("malformed JSON body", nil), h.Log)
		return
	}

	name := sanitize.DisplayName(in.Name)
	if name == "" || len(name) > sanitize.MaxNameLen {
		httperr.Write(w, r, httperr.BadRequest("name is required", nil), h.Log)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	g, err := h.Groups.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if g == nil {
		httperr.Write(w, r, httperr.NotFound("no such group found"), h.Log)
		return
	}

	isAdmin := false
	if in.Passcode != "" {
		if !passcode.Verify(g.Passcode, in.Passcode) {
			httperr.Write(w, r, httperr.Unauthenticated("invalid passcode"), h.Log)
			return
		}
		isAdmin = true
	}

	user := models.User{
		ID:      random.NewID(),
		Name:    name,
		IsAdmin: isAdmin,
		Location: &models.Geolocation{
			IsHidden: true,
			Position: models.GeoPosition{},
		},
	}
	if err := h.Groups.PushUser(ctx, g.ID, user); err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}

	token, err := h.Tokens.Issue(g.ID, user.ID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}

	h.Log.Info("user joined group",
		zap.String("group_id", g.ID),
		zap.String("user_id", user.ID),
		zap.Bool("is_admin", isAdmin))
	writeJSON(w, joinResponse{ID: user.ID, Token: token})
}
