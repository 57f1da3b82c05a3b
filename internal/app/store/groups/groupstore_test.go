package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/avelichko/groupmap/internal/app/store/groups"
	"github.com/avelichko/groupmap/internal/app/system/indexes"
	"github.com/avelichko/groupmap/internal/app/system/random"
	"github.com/avelichko/groupmap/internal/domain/models"
	"github.com/avelichko/groupmap/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestStore_InsertAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := models.Group{
		ID:         random.NewID(),
		Name:       "Hiking Club",
		InviteCode: random.NewInviteCode(),
		Users:      []models.User{},
		Structures: []models.Structure{},
	}
	if err := store.Insert(ctx, g); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	byID, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID == nil || byID.Name != "Hiking Club" {
		t.Fatalf("GetByID: got %+v", byID)
	}

	byCode, err := store.GetByInviteCode(ctx, g.InviteCode)
	if err != nil {
		t.Fatalf("GetByInviteCode failed: %v", err)
	}
	if byCode == nil || byCode.ID != g.ID {
		t.Fatalf("GetByInviteCode: got %+v", byCode)
	}
}

func TestStore_GetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.GetByID(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if g != nil {
		t.Errorf("expected nil for missing group, got %+v", g)
	}

	g, err = store.GetByInviteCode(ctx, "nope")
	if err != nil {
		t.Fatalf("GetByInviteCode failed: %v", err)
	}
	if g != nil {
		t.Errorf("expected nil for missing invite code, got %+v", g)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Doomed")

	deleted, err := store.Delete(ctx, g.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected deleted=true")
	}

	// Second delete reports absence.
	deleted, err = store.Delete(ctx, g.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if deleted {
		t.Error("expected deleted=false for missing group")
	}
}

func TestStore_PushAndFindUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Hiking Club")

	u := models.User{ID: random.NewID(), Name: "Ada", IsAdmin: true}
	if err := store.PushUser(ctx, g.ID, u); err != nil {
		t.Fatalf("PushUser failed: %v", err)
	}

	found, err := store.FindUser(ctx, g.ID, u.ID)
	if err != nil {
		t.Fatalf("FindUser failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected user, got nil")
	}
	if found.Name != "Ada" || !found.IsAdmin {
		t.Errorf("FindUser: got %+v", found)
	}
}

func TestStore_FindUser_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Hiking Club")

	// Missing user in an existing group and a missing group both
	// resolve to nil.
	found, err := store.FindUser(ctx, g.ID, "nope")
	if err != nil {
		t.Fatalf("FindUser failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil, got %+v", found)
	}

	found, err = store.FindUser(ctx, "no-group", "nope")
	if err != nil {
		t.Fatalf("FindUser failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil, got %+v", found)
	}
}

func TestStore_PullUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGroup(ctx, "Hiking Club")
	u := fx.AddUser(ctx, g.ID, "Ada", false)
	keeper := fx.AddUser(ctx, g.ID, "Grace", false)

	removed, err := store.PullUser(ctx, g.ID, u.ID)
	if err != nil {
		t.Fatalf("PullUser failed: %v", err)
	}
	if !removed {
		t.Error("expected removed=true")
	}

	if found, _ := store.FindUser(ctx, g.ID, u.ID); found != nil {
		t.Errorf("pulled user still resolves: %+v", found)
	}
	if found, _ := store.FindUser(ctx, g.ID, keeper.ID); found == nil {
		t.Error("unrelated user was removed")
	}

	removed, err = store.PullUser(ctx, g.ID, u.ID)
	if err != nil {
		t.Fatalf("second PullUser failed: %v", err)
	}
	if removed {
		t.Error("expected removed=false for already absent user")
	}
}

func TestStore_Insert_DuplicateID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The unique index on id is what surfaces the duplicate.
	ensureIndexes(t, db)

	g := models.Group{ID: random.NewID(), Name: "One", InviteCode: random.NewInviteCode()}
	if err := store.Insert(ctx, g); err != nil {
		t.Fatalf("first Insert failed: %v", err)
	}

	dup := models.Group{ID: g.ID, Name: "Two", InviteCode: random.NewInviteCode()}
	if err := store.Insert(ctx, dup); !errors.Is(err, groupstore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func ensureIndexes(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}
