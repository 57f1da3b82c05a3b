// internal/app/features/location/routes.go
package location

import (
	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, g *auth.Guard) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(g.RequireMember)

		pr.Get("/all", h.ServeAll)
		pr.Get("/my", h.ServeMine)
		pr.Get("/{userID}", h.ServeUser)
		pr.Put("/my", h.HandleUpdate)
		pr.Delete("/my", h.HandleErase)
	})

	return r
}
