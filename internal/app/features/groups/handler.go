// internal/app/features/groups/handler.go
package groups

import (
	"encoding/json"
	"net/http"

	groupstore "github.com/avelichko/groupmap/internal/app/store/groups"
	"github.com/avelichko/groupmap/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature:
// group lifecycle, invite-code joins, member listing, kick and leave.
type Handler struct {
	Groups *groupstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs a groups Handler. Called from bootstrap where
// the store, token manager, and logger are already initialized.
func NewHandler(groups *groupstore.Store, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Groups: groups,
		Tokens: tokens,
		Log:    logger,
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
