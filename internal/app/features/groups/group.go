// internal/app/features/groups/group.go
package groups

import (
	"net/http"

	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"github.com/avelichko/groupmap/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// groupInfo is the member-facing view of a group: passcode hash and the
// embedded users/structures arrays are stripped.
type groupInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"inviteCode"`
}

// ServeGroupInfo handles GET /groups/my.
func (h *Handler) ServeGroupInfo(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, m.Claims.GroupID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if g == nil {
		// Deleted between the guard's liveness check and this read.
		httperr.Write(w, r, httperr.NotFound("no such group found"), h.Log)
		return
	}

	writeJSON(w, groupInfo{ID: g.ID, Name: g.Name, InviteCode: g.InviteCode})
}

// HandleDeleteGroup handles DELETE /groups/my (admin only). Deleting
// the root document cascades to every embedded user and structure.
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	deleted, err := h.Groups.Delete(ctx, m.Claims.GroupID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if !deleted {
		httperr.Write(w, r, httperr.NotFound("no such group found"), h.Log)
		return
	}

	h.Log.Info("group deleted", zap.String("group_id", m.Claims.GroupID))
	writeJSON(w, struct{}{})
}
