// internal/app/features/groups/create.go
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
	"go.uber.org/zap"
)

// groupInput is the body for both group creation and joins: a display
// name plus an optional admin passcode.
type groupInput struct {
	Name     string `json:"name"`
	Passcode string `json:"passcode"`
}

// createResponse returns the generated group id and the invite code
// that members use to join. The passcode is never echoed back.
type createResponse struct {
	ID         string `json:"id"`
	InviteCode string `json:"inviteCode"`
}

// HandleCreateGroup handles POST /groups.
//
// A passcode, when supplied, is bcrypt-hashed and becomes the group's
// admin secret; a group created without one has no admin role at all.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
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

	g := models.Group{
		ID:         random.NewID(),
		Name:       name,
		InviteCode: random.NewInviteCode(),
		Users:      []models.User{},
		Structures: []models.Structure{},
	}
	if in.Passcode != "" {
		hash, err := passcode.Hash(in.Passcode)
		if err != nil {
			httperr.Write(w, r, err, h.Log)
			return
		}
		g.Passcode = hash
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if err := h.Groups.Insert(ctx, g); err != nil {
		// Includes the (astronomically unlikely) id or invite code
		// collision; generation is not retried.
		httperr.Write(w, r, err, h.Log)
		return
	}

	h.Log.Info("group created", zap.String("group_id", g.ID))
	writeJSON(w, createResponse{ID: g.ID, InviteCode: g.InviteCode})
}
