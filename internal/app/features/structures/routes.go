// internal/app/features/structures/routes.go
package structures

import (
	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, g *auth.Guard) chi.Router {
	r := chi.NewRouter()

	// Reads are member-scoped; mutations additionally require the
	// caller to be the author or an admin, enforced inside the
	// handlers through author-constrained updates.
	r.Group(func(pr chi.Router) {
		pr.Use(g.RequireMember)

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/{structID}", h.ServeOne)
		pr.Put("/{structID}", h.HandleReplace)
		pr.Delete("/{structID}", h.HandleDelete)
		pr.Get("/{structID}/fields", h.ServeFields)
		pr.Post("/{structID}/fields", h.HandlePatchFields)
		pr.Delete("/{structID}/fields", h.HandleUnsetFields)
	})

	return r
}
