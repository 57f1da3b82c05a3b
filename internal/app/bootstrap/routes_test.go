package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avelichko/groupmap/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func testAppConfig() AppConfig {
	return AppConfig{
		TokenSecret: "test-secret-0123456789ABCDEF-0123456789",
		TokenExpiry: time.Hour,
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, handler http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestBuildHandler_EndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{MongoClient: db.Client(), MongoDatabase: db}

	handler, err := BuildHandler(&config.CoreConfig{}, testAppConfig(), deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	// Liveness endpoints answer without credentials.
	if rec := get(t, handler, "/v0/status", ""); rec.Code != http.StatusOK {
		t.Fatalf("GET /v0/status: got %d", rec.Code)
	}
	if rec := get(t, handler, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("GET /health: got %d", rec.Code)
	}

	// Create a group and join it as admin.
	rec := postJSON(t, handler, "/v0/groups", map[string]string{
		"name":     "Hiking Club",
		"passcode": "open sesame",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v0/groups: got %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID         string `json:"id"`
		InviteCode string `json:"inviteCode"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = postJSON(t, handler, "/v0/groups/"+created.InviteCode, map[string]string{
		"name":     "Ada",
		"passcode": "open sesame",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /v0/groups/{inviteCode}: got %d, body %s", rec.Code, rec.Body.String())
	}
	var joined struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &joined); err != nil {
		t.Fatalf("decode join response: %v", err)
	}
	if joined.Token == "" {
		t.Fatal("expected bearer token in join response")
	}

	// The token works on member endpoints, at both mounts.
	for _, path := range []string{"/v0/groups/my", "/groups/my"} {
		rec := get(t, handler, path, joined.Token)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: got %d, body %s", path, rec.Code, rec.Body.String())
		}
	}

	// Without a token the guard refuses.
	if rec := get(t, handler, "/v0/groups/my", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /v0/groups/my without token: got %d", rec.Code)
	}
}

func TestValidateConfig(t *testing.T) {
	logger := testLogger()

	cfg := testAppConfig()
	cfg.MongoURI = "mongodb://localhost:27017"
	if err := ValidateConfig(&config.CoreConfig{}, cfg, logger); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	bad := cfg
	bad.TokenSecret = ""
	if err := ValidateConfig(&config.CoreConfig{}, bad, logger); err == nil {
		t.Error("expected error for empty token secret")
	}

	bad = cfg
	bad.TokenExpiry = 0
	if err := ValidateConfig(&config.CoreConfig{}, bad, logger); err == nil {
		t.Error("expected error for zero token expiry")
	}

	bad = cfg
	bad.MongoURI = "not-a-uri"
	if err := ValidateConfig(&config.CoreConfig{}, bad, logger); err == nil {
		t.Error("expected error for invalid mongo URI")
	}
}
