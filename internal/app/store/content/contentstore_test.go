package contentstore

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/dalemusser/stratascout/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestStore_Find_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Find(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Get_InitializesDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	snap, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	def := models.DefaultContent()
	if snap.Doc.Hero != def.Hero {
		t.Errorf("Get() hero = %+v, want defaults", snap.Doc.Hero)
	}
	if snap.Revision == "" {
		t.Error("Get() revision should be set")
	}

	// Second call must not create another record.
	again, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() second call error = %v", err)
	}
	if again.Revision != snap.Revision {
		t.Error("Get() should not reinitialize an existing record")
	}
	n, err := db.Collection(CollectionName).CountDocuments(ctx, map[string]any{})
	if err != nil {
		t.Fatalf("CountDocuments() error = %v", err)
	}
	if n != 1 {
		t.Errorf("record count = %d, want 1", n)
	}
}

func TestStore_Initialize_DoesNotOverwrite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc := models.DefaultContent()
	doc.Hero.TitleEn = "First"
	created, err := store.Initialize(ctx, doc)
	if err != nil || !created {
		t.Fatalf("Initialize() = %v, %v; want true, nil", created, err)
	}

	doc.Hero.TitleEn = "Second"
	created, err = store.Initialize(ctx, doc)
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if created {
		t.Error("Initialize() should not create a second record")
	}

	snap, err := store.Find(ctx)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if snap.Doc.Hero.TitleEn != "First" {
		t.Errorf("TitleEn = %q, want First", snap.Doc.Hero.TitleEn)
	}
}

func TestStore_Replace(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	doc := first.Doc
	doc.Achievements = nil
	doc.Videos = []models.Video{{ID: 1, TitleAr: "فيديو", URL: "https://youtu.be/abc"}}

	rev, err := store.Replace(ctx, doc)
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if rev == first.Revision {
		t.Error("Replace() should produce a new revision")
	}

	snap, err := store.Find(ctx)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if snap.Revision != rev {
		t.Errorf("revision = %q, want %q", snap.Revision, rev)
	}
	if snap.Doc.Achievements == nil || len(snap.Doc.Achievements) != 0 {
		t.Errorf("achievements = %v, want empty list", snap.Doc.Achievements)
	}
	if len(snap.Doc.Videos) != 1 || snap.Doc.Videos[0].URL != "https://youtu.be/abc" {
		t.Errorf("videos = %+v", snap.Doc.Videos)
	}
}

func TestFromRaw_BackfillsMissingKeys(t *testing.T) {
	// An older record: no leader section, memberCount stored empty, hero
	// title stored as null.
	raw, err := bson.Marshal(bson.M{
		"hero":         bson.M{"titleAr": nil, "titleEn": "Stored"},
		"about":        bson.M{"memberCount": ""},
		"contact":      bson.M{"email": "group@example.com"},
		"achievements": bson.A{},
	})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := fromRaw(raw)
	if err != nil {
		t.Fatalf("fromRaw() error = %v", err)
	}
	def := models.DefaultContent()

	if doc.Leader != def.Leader {
		t.Errorf("Leader = %+v, want defaults", doc.Leader)
	}
	if doc.Hero.TitleAr != def.Hero.TitleAr {
		t.Errorf("null titleAr should take the default, got %q", doc.Hero.TitleAr)
	}
	if doc.Hero.TitleEn != "Stored" {
		t.Errorf("TitleEn = %q", doc.Hero.TitleEn)
	}
	if doc.About.MemberCount != "" {
		t.Errorf("stored empty memberCount should be kept, got %q", doc.About.MemberCount)
	}
	if doc.About.MissionAr != def.About.MissionAr {
		t.Errorf("missing missionAr should take the default, got %q", doc.About.MissionAr)
	}
	if doc.Contact.Email != "group@example.com" || doc.Contact.Phone != def.Contact.Phone {
		t.Errorf("Contact = %+v", doc.Contact)
	}
	if len(doc.Achievements) != 0 {
		t.Errorf("stored empty list should stay empty, got %d", len(doc.Achievements))
	}
	if len(doc.Videos) != len(def.Videos) {
		t.Errorf("missing videos should take the defaults, got %d", len(doc.Videos))
	}
}

func TestFromRaw_Empty(t *testing.T) {
	doc, err := fromRaw(nil)
	if err != nil {
		t.Fatalf("fromRaw(nil) error = %v", err)
	}
	if doc.Hero != models.DefaultContent().Hero {
		t.Errorf("fromRaw(nil) hero = %+v, want defaults", doc.Hero)
	}
}

func TestStore_Find_RecordWithoutLeader(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection(CollectionName).InsertOne(ctx, bson.M{
		"singleton": true,
		"revision":  "imported",
		"content": bson.M{
			"hero":   bson.M{"titleEn": "Imported"},
			"videos": bson.A{},
		},
	})
	if err != nil {
		t.Fatalf("InsertOne() error = %v", err)
	}

	snap, err := store.Find(ctx)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	def := models.DefaultContent()
	if snap.Doc.Leader != def.Leader {
		t.Errorf("Leader = %+v, want defaults", snap.Doc.Leader)
	}
	if snap.Doc.About.MemberCount != def.About.MemberCount {
		t.Errorf("MemberCount = %q, want %q", snap.Doc.About.MemberCount, def.About.MemberCount)
	}
	if snap.Doc.Hero.TitleEn != "Imported" || snap.Revision != "imported" {
		t.Errorf("Find() = %q / %q", snap.Doc.Hero.TitleEn, snap.Revision)
	}
}
