package location_test

import (
	"net/http"
	"testing"

	"github.com/avelichko/groupmap/internal/app/features/location"
	locationstore "github.com/avelichko/groupmap/internal/app/store/locations"
	"github.com/avelichko/groupmap/internal/domain/models"
	"github.com/avelichko/groupmap/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *location.Handler {
	t.Helper()
	return location.NewHandler(locationstore.New(db), zap.NewNop())
}

func TestLocationLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Hiking Club")
	me := fx.AddUser(ctx, g.ID, "Ada", false)
	mate := fx.AddUser(ctx, g.ID, "Grace", false)

	// Before any update the position is hidden.
	req := testutil.NewMemberRequest(t, http.MethodGet, "/location/my", nil, testutil.Member(g.ID, me))
	rec := testutil.NewRecorder()
	h.ServeMine(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	// Publish a position.
	req = testutil.NewMemberRequest(t, http.MethodPut, "/location/my",
		map[string]float64{"latitude": 38.95, "longitude": -92.33}, testutil.Member(g.ID, me))
	rec = testutil.NewRecorder()
	h.HandleUpdate(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var pos models.GeoPosition
	rec.DecodeJSON(t, &pos)
	if pos.Lat != 38.95 || pos.Lon != -92.33 {
		t.Errorf("echoed position: got %+v", pos)
	}

	// A groupmate can now read it.
	req = testutil.NewMemberRequest(t, http.MethodGet, "/location/"+me.ID, nil, testutil.Member(g.ID, mate))
	req = testutil.WithChiURLParam(req, "userID", me.ID)
	rec = testutil.NewRecorder()
	h.ServeUser(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &pos)
	if pos.Lat != 38.95 {
		t.Errorf("groupmate read: got %+v", pos)
	}

	// Erase hides it again.
	req = testutil.NewMemberRequest(t, http.MethodDelete, "/location/my", nil, testutil.Member(g.ID, me))
	rec = testutil.NewRecorder()
	h.HandleErase(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewMemberRequest(t, http.MethodGet, "/location/"+me.ID, nil, testutil.Member(g.ID, mate))
	req = testutil.WithChiURLParam(req, "userID", me.ID)
	rec = testutil.NewRecorder()
	h.ServeUser(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, "no such user found or location is hidden")

	// Erase is idempotent.
	req = testutil.NewMemberRequest(t, http.MethodDelete, "/location/my", nil, testutil.Member(g.ID, me))
	rec = testutil.NewRecorder()
	h.HandleErase(rec, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestHandleUpdate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Hiking Club")
	me := fx.AddUser(ctx, g.ID, "Ada", false)

	for name, body := range map[string]map[string]float64{
		"lat too high": {"latitude": 91, "longitude": 0},
		"lat too low":  {"latitude": -91, "longitude": 0},
		"lon too high": {"latitude": 0, "longitude": 181},
		"lon too low":  {"latitude": 0, "longitude": -181},
	} {
		req := testutil.NewMemberRequest(t, http.MethodPut, "/location/my", body, testutil.Member(g.ID, me))
		rec := testutil.NewRecorder()
		h.HandleUpdate(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status got %d, want %d", name, rec.Code, http.StatusBadRequest)
		}
	}
}

func TestServeAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Hiking Club")
	me := fx.AddUser(ctx, g.ID, "Ada", false)
	mate := fx.AddUser(ctx, g.ID, "Grace", false)
	fx.AddUser(ctx, g.ID, "Hidden", false)

	store := locationstore.New(db)
	if _, err := store.Set(ctx, g.ID, me.ID, models.GeoPosition{Lat: 1, Lon: 2}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := store.Set(ctx, g.ID, mate.ID, models.GeoPosition{Lat: 3, Lon: 4}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	req := testutil.NewMemberRequest(t, http.MethodGet, "/location/all", nil, testutil.Member(g.ID, me))
	rec := testutil.NewRecorder()
	h.ServeAll(rec, req)
	rec.AssertStatus(t, http.StatusOK)

	var all []models.UserGeolocation
	rec.DecodeJSON(t, &all)
	if len(all) != 2 {
		t.Fatalf("expected 2 visible locations, got %d", len(all))
	}

	// exclude_user drops the caller.
	req = testutil.NewMemberRequest(t, http.MethodGet, "/location/all?exclude_user=true", nil, testutil.Member(g.ID, me))
	rec = testutil.NewRecorder()
	h.ServeAll(rec, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &all)
	if len(all) != 1 || all[0].User != mate.ID {
		t.Errorf("expected only groupmate, got %+v", all)
	}
}
