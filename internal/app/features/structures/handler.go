// internal/app/features/structures/handler.go
package structures

import (
	"encoding/json"
	"net/http"

	groupstore "github.com/avelichko/groupmap/internal/app/store/groups"
	structurestore "github.com/avelichko/groupmap/internal/app/store/structures"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the structures
// feature: user-authored geo objects and their open field mappings.
type Handler struct {
	Structures *structurestore.Store
	Groups     *groupstore.Store
	Log        *zap.Logger
}

func NewHandler(structures *structurestore.Store, groups *groupstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Structures: structures,
		Groups:     groups,
		Log:        logger,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
