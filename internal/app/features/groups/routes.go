// internal/app/features/groups/routes.go
package groups

import (
	"github.com/avelichko/groupmap/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, g *auth.Guard) chi.Router {
	r := chi.NewRouter()

	// Public: group creation and invite-code join issue credentials,
	// they do not require one.
	r.Post("/", h.HandleCreateGroup)
	r.Post("/{inviteCode}", h.HandleJoinGroup)

	// Member-scoped
	r.Group(func(pr chi.Router) {
		pr.Use(g.RequireMember)

		pr.Get("/my", h.ServeGroupInfo)
		pr.Get("/my/users", h.ServeGroupUsers)
		pr.Get("/my/users/me", h.ServeCurrentUser)
		pr.Get("/my/users/{userID}", h.ServeUserInfo)
		pr.Delete("/my/users/me", h.HandleLeaveGroup)
	})

	// Admin-scoped
	r.Group(func(pr chi.Router) {
		pr.Use(g.RequireAdmin)

		pr.Delete("/my", h.HandleDeleteGroup)
		pr.Delete("/my/users/{userID}", h.HandleKickUser)
	})

	return r
}
