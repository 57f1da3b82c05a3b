package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avelichko/groupmap/internal/app/system/httperr"
	"go.uber.org/zap"
)

func TestWrite_Classified(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v0/groups/my", nil)
	rec := httptest.NewRecorder()

	httperr.Write(rec, req, httperr.NotFound("no such group found"), zap.NewNop())

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: got %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["errorText"] != "no such group found" {
		t.Errorf("errorText: got %v", body["errorText"])
	}
	if body["url"] != "/v0/groups/my" {
		t.Errorf("url: got %v", body["url"])
	}
	if _, present := body["moreInfo"]; present {
		t.Error("moreInfo should be omitted when empty")
	}
}

func TestWrite_MoreInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v0/groups", nil)
	rec := httptest.NewRecorder()

	httperr.Write(rec, req, httperr.BadRequest("invalid name", map[string]string{"name": "too long"}), zap.NewNop())

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "too long") {
		t.Errorf("expected moreInfo in body, got %s", rec.Body.String())
	}
}

func TestWrite_Unclassified(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v0/location/all", nil)
	rec := httptest.NewRecorder()

	httperr.Write(rec, req, errors.New("mongo: connection reset"), zap.NewNop())

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestWrite_WrappedError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v0/groups/my", nil)
	rec := httptest.NewRecorder()

	// A classified error inside a wrap chain still maps to its status.
	wrapped := errorsWrap(httperr.Forbidden("admin rights required"))
	httperr.Write(rec, req, wrapped, zap.NewNop())

	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func errorsWrap(err error) error {
	return &wrapError{err}
}

type wrapError struct{ inner error }

func (w *wrapError) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrapError) Unwrap() error { return w.inner }
