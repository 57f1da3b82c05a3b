// internal/app/features/structures/structures.go
package structures

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"github.com/avelichko/groupmap/internal/app/system/random"
	"github.com/avelichko/groupmap/internal/app/system/timeouts"
	"github.com/avelichko/groupmap/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeList handles GET /structures: all of the group's structures.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
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

	list := g.Structures
	if list == nil {
		list = []models.Structure{}
	}
	writeJSON(w, list)
}

// HandleCreate handles POST /structures. The body is the opaque struct
// payload itself; id and authorship are assigned here.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)

	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperr.Write(w, r, httperr.BadRequest("malformed JSON body", nil), h.Log)
		return
	}

	st := models.Structure{
		ID:     random.NewID(),
		User:   m.User.ID,
		Struct: payload,
		Fields: map[string]any{},
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if err := h.Structures.Push(ctx, m.Claims.GroupID, st); err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}

	h.Log.Info("structure created",
		zap.String("group_id", m.Claims.GroupID),
		zap.String("structure_id", st.ID),
		zap.String("author", m.User.ID))
	writeJSON(w, st)
}

// ServeOne handles GET /structures/{structID}. Reads are member-scoped,
// not owner-scoped.
func (h *Handler) ServeOne(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	structID := chi.URLParam(r, "structID")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	st, err := h.Structures.Find(ctx, m.Claims.GroupID, structID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if st == nil {
		httperr.Write(w, r, httperr.NotFound("no such structure found"), h.Log)
		return
	}
	writeJSON(w, st)
}

// HandleReplace handles PUT /structures/{structID}: full replacement of
// the struct payload, permitted to the author or an admin.
//
// For non-admins the author constraint rides inside the update's
// element filter, so the permission check and the write are one atomic
// operation; only when nothing matched do we look up the structure to
// tell "absent" (404) from "not yours" (403).
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	structID := chi.URLParam(r, "structID")

	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httperr.Write(w, r, httperr.BadRequest("malformed JSON body", nil), h.Log)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	var ok bool
	var err error
	if m.User.IsAdmin {
		ok, err = h.Structures.ReplacePayload(ctx, m.Claims.GroupID, structID, payload)
	} else {
		ok, err = h.Structures.ReplacePayloadByAuthor(ctx, m.Claims.GroupID, structID, m.User.ID, payload)
	}
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if !ok {
		if apiErr := h.explainMiss(ctx, m, structID); apiErr != nil {
			httperr.Write(w, r, apiErr, h.Log)
			return
		}
		// Matched but unmodified (payload already identical): success.
	}

	st, err := h.Structures.Find(ctx, m.Claims.GroupID, structID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if st == nil {
		httperr.Write(w, r, httperr.NotFound("no such structure found"), h.Log)
		return
	}
	writeJSON(w, st)
}

// HandleDelete handles DELETE /structures/{structID}, permitted to the
// author or an admin.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	structID := chi.URLParam(r, "structID")

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	var ok bool
	var err error
	if m.User.IsAdmin {
		ok, err = h.Structures.Pull(ctx, m.Claims.GroupID, structID)
	} else {
		ok, err = h.Structures.PullByAuthor(ctx, m.Claims.GroupID, structID, m.User.ID)
	}
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if !ok {
		if apiErr := h.explainMiss(ctx, m, structID); apiErr != nil {
			httperr.Write(w, r, apiErr, h.Log)
			return
		}
	}

	h.Log.Info("structure deleted",
		zap.String("group_id", m.Claims.GroupID),
		zap.String("structure_id", structID),
		zap.String("by", m.User.ID))
	writeJSON(w, struct{}{})
}

// explainMiss resolves why an author-constrained update matched
// nothing: 404 when the structure is gone, 403 when it exists but the
// caller is neither author nor admin, nil when the element actually
// matched and the update was just a no-op.
func (h *Handler) explainMiss(ctx context.Context, m *auth.Member, structID string) *httperr.Error {
	st, err := h.Structures.Find(ctx, m.Claims.GroupID, structID)
	if err != nil {
		h.Log.Error("resolving structure after missed update", zap.Error(err))
		return httperr.NotFound("no such structure found")
	}
	if st == nil {
		return httperr.NotFound("no such structure found")
	}
	if !m.User.IsAdmin && st.User != m.User.ID {
		return httperr.Forbidden("insufficient permissions")
	}
	return nil
}
