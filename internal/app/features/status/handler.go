// internal/app/features/status/handler.go
package status

import (
	"encoding/json"
	"net/http"
)

// Handler serves the liveness endpoint. It has no dependencies: a 200
// here means only that the process is up and routing requests.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Serve handles GET /status with the fixed `{"text":"OK!"}` body.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"text": "OK!"})
}
