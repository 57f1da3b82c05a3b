// internal/app/features/location/location.go
package location

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"github.com/avelichko/groupmap/internal/app/system/timeouts"
	"github.com/avelichko/groupmap/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeAll handles GET /location/all: every groupmate's visible
// position. Hidden locations are excluded before the response is built.
// The exclude_user query flag drops the caller's own entry.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	excludeUser := ""
	if v, _ := strconv.ParseBool(r.URL.Query().Get("exclude_user")); v {
		excludeUser = m.User.ID
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	locations, err := h.Locations.All(ctx, m.Claims.GroupID, excludeUser)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if locations == nil {
		httperr.Write(w, r, httperr.NotFound("no such group found"), h.Log)
		return
	}
	writeJSON(w, locations)
}

// ServeUser handles GET /location/{userID}. Hidden and absent collapse
// to the same 404 so members can't probe who is hiding.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	userID := chi.URLParam(r, "userID")
	h.serveUserPosition(w, r, m.Claims.GroupID, userID)
}

// ServeMine handles GET /location/my: the caller's own stored position,
// 404 while hidden.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	h.serveUserPosition(w, r, m.Claims.GroupID, m.User.ID)
}

func (h *Handler) serveUserPosition(w http.ResponseWriter, r *http.Request, groupID, userID string) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	pos, err := h.Locations.Get(ctx, groupID, userID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if pos == nil {
		httperr.Write(w, r, httperr.NotFound("no such user found or location is hidden"), h.Log)
		return
	}
	writeJSON(w, pos)
}

// HandleUpdate handles PUT /location/my. The body uses the long-form
// input shape ({latitude, longitude}); the response echoes the stored
// shape ({lat, lon}).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	var in models.GeoPositionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httperr.Write(w, r, httperr.BadRequest("malformed JSON body", nil), h.Log)
		return
	}
	if !in.Valid() {
		httperr.Write(w, r, httperr.BadRequest("coordinates out of range", nil), h.Log)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	pos := in.Position()
	// The result flag is ignored: setting an unchanged position
	// modifies nothing, and the guard already proved membership.
	if _, err := h.Locations.Set(ctx, m.Claims.GroupID, m.User.ID, pos); err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}

	writeJSON(w, pos)
}

// HandleErase handles DELETE /location/my: hides the caller's location
// and zeroes the stored position. Idempotent.
func (h *Handler) HandleErase(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if _, err := h.Locations.Erase(ctx, m.Claims.GroupID, m.User.ID); err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}

	h.Log.Info("location hidden",
		zap.String("group_id", m.Claims.GroupID),
		zap.String("user_id", m.User.ID))
	writeJSON(w, struct{}{})
}
