package health_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelichko/groupmap/internal/app/features/health"
	"github.com/avelichko/groupmap/internal/testutil"
	"go.uber.org/zap"
)

func TestServe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := health.NewHandler(db.Client(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	body := rec.Body.String()
	if body != "{\"status\":\"ok\",\"database\":\"connected\"}\n" {
		t.Errorf("body: got %q", body)
	}
}
