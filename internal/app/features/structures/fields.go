// internal/app/features/structures/fields.go
package structures

import (
	"encoding/json"
	"errors"
	"net/http"

	structurestore "github.com/avelichko/groupmap/internal/app/store/structures"
	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"github.com/avelichko/groupmap/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeFields handles GET /structures/{structID}/fields. Field access
// follows the same owner-or-admin rule as field mutation.
func (h *Handler) ServeFields(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	structID := chi.URLParam(r, "structID")

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	if apiErr := h.explainMiss(ctx, m, structID); apiErr != nil {
		httperr.Write(w, r, apiErr, h.Log)
		return
	}

	fields, err := h.Structures.GetFields(ctx, m.Claims.GroupID, structID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if fields == nil {
		httperr.Write(w, r, httperr.NotFound("no such structure found"), h.Log)
		return
	}
	writeJSON(w, fields)
}

// HandlePatchFields handles POST /structures/{structID}/fields. The
// body is a mapping of keys to set; each key is written as its own
// targeted update path, so sibling keys survive, and concurrent patches
// interleave at key granularity. Responds with the merged mapping.
func (h *Handler) HandlePatchFields(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	structID := chi.URLParam(r, "structID")

	var entries map[string]any
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		httperr.Write(w, r, httperr.BadRequest("malformed JSON body", nil), h.Log)
		return
	}
	if len(entries) == 0 {
		httperr.Write(w, r, httperr.BadRequest("at least one field is required", nil), h.Log)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	var ok bool
	var err error
	if m.User.IsAdmin {
		ok, err = h.Structures.PatchFields(ctx, m.Claims.GroupID, structID, entries)
	} else {
		ok, err = h.Structures.PatchFieldsByAuthor(ctx, m.Claims.GroupID, structID, m.User.ID, entries)
	}
	if err != nil {
		if errors.Is(err, structurestore.ErrInvalidFieldKey) {
			httperr.Write(w, r, httperr.BadRequest("field keys must not contain path delimiters", nil), h.Log)
			return
		}
		httperr.Write(w, r, err, h.Log)
		return
	}
	if !ok {
		if apiErr := h.explainMiss(ctx, m, structID); apiErr != nil {
			httperr.Write(w, r, apiErr, h.Log)
			return
		}
		// Matched but values were already identical: success.
	}

	h.Log.Info("structure fields patched",
		zap.String("group_id", m.Claims.GroupID),
		zap.String("structure_id", structID),
		zap.Int("keys", len(entries)))
	h.serveCurrentFields(w, r, m, structID)
}

// HandleUnsetFields handles DELETE /structures/{structID}/fields. The
// body is an array of key names; each named key is removed without
// touching the others. Unknown keys are a no-op, not an error.
// Responds with the remaining mapping.
func (h *Handler) HandleUnsetFields(w http.ResponseWriter, r *http.Request) {
	m, _ := auth.CurrentMember(r)
	structID := chi.URLParam(r, "structID")

	var keys []string
	if err := json.NewDecoder(r.Body).Decode(&keys); err != nil {
		httperr.Write(w, r, httperr.BadRequest("malformed JSON body", nil), h.Log)
		return
	}
	if len(keys) == 0 {
		httperr.Write(w, r, httperr.BadRequest("at least one field key is required", nil), h.Log)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	var err error
	if m.User.IsAdmin {
		_, err = h.Structures.UnsetFields(ctx, m.Claims.GroupID, structID, keys)
	} else {
		_, err = h.Structures.UnsetFieldsByAuthor(ctx, m.Claims.GroupID, structID, m.User.ID, keys)
	}
	if err != nil {
		if errors.Is(err, structurestore.ErrInvalidFieldKey) {
			httperr.Write(w, r, httperr.BadRequest("field keys must not contain path delimiters", nil), h.Log)
			return
		}
		httperr.Write(w, r, err, h.Log)
		return
	}
	// Unsetting absent keys modifies nothing, so the result flag can't
	// distinguish a no-op from a miss; resolve permissions explicitly.
	if apiErr := h.explainMiss(ctx, m, structID); apiErr != nil {
		httperr.Write(w, r, apiErr, h.Log)
		return
	}

	h.Log.Info("structure fields removed",
		zap.String("group_id", m.Claims.GroupID),
		zap.String("structure_id", structID),
		zap.Int("keys", len(keys)))
	h.serveCurrentFields(w, r, m, structID)
}

func (h *Handler) serveCurrentFields(w http.ResponseWriter, r *http.Request, m *auth.Member, structID string) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	fields, err := h.Structures.GetFields(ctx, m.Claims.GroupID, structID)
	if err != nil {
		httperr.Write(w, r, err, h.Log)
		return
	}
	if fields == nil {
		httperr.Write(w, r, httperr.NotFound("no such structure found"), h.Log)
		return
	}
	writeJSON(w, fields)
}
