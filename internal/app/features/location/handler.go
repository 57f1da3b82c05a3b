// internal/app/features/location/handler.go
package location

import (
	"encoding/json"
	"net/http"

	locationstore "github.com/avelichko/groupmap/internal/app/store/locations"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the location feature.
type Handler struct {
	Locations *locationstore.Store
	Log       *zap.Logger
}

func NewHandler(locations *locationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Locations: locations, Log: logger}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
