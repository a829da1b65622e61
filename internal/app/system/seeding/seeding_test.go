package seeding

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

type fakeInit struct {
	exists bool
	got    *models.ContentDocument
	err    error
}

func (f *fakeInit) Initialize(ctx context.Context, doc models.ContentDocument) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.exists {
		return false, nil
	}
	f.got = &doc
	return true, nil
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadSeed_MergesOverDefaults(t *testing.T) {
	p := writeSeed(t, `
hero:
  titleEn: Falcons Scout Group
contact:
  email: info@falcons.example
videos:
  - id: 1
    titleAr: رحلة
    url: https://youtu.be/abcdefghijk
`)
	doc, _, err := LoadSeed(p)
	if err != nil {
		t.Fatalf("LoadSeed() error = %v", err)
	}
	def := models.DefaultContent()
	if doc.Hero.TitleEn != "Falcons Scout Group" {
		t.Errorf("TitleEn = %q", doc.Hero.TitleEn)
	}
	if doc.Hero.TitleAr != def.Hero.TitleAr {
		t.Error("missing keys should keep defaults")
	}
	if len(doc.Videos) != 1 || doc.Videos[0].TitleAr != "رحلة" {
		t.Errorf("Videos = %+v", doc.Videos)
	}
	if len(doc.Achievements) != len(def.Achievements) {
		t.Errorf("Achievements = %d, want defaults", len(doc.Achievements))
	}
}

func TestLoadSeed_Errors(t *testing.T) {
	if _, _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
	if _, _, err := LoadSeed(writeSeed(t, "hero: [unclosed")); err == nil {
		t.Error("invalid YAML should fail")
	}
}

func TestSeedContent(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	f := &fakeInit{}
	if err := SeedContent(ctx, f, "", logger); err != nil {
		t.Fatal(err)
	}
	if f.got == nil || f.got.Hero != models.DefaultContent().Hero {
		t.Error("empty seed file should seed defaults")
	}

	existing := &fakeInit{exists: true}
	if err := SeedContent(ctx, existing, writeSeed(t, "hero: {titleEn: X}"), logger); err != nil {
		t.Fatal(err)
	}
	if existing.got != nil {
		t.Error("existing record must not be replaced")
	}

	failing := &fakeInit{err: errors.New("down")}
	if err := SeedContent(ctx, failing, "", logger); err == nil {
		t.Error("Initialize error should propagate")
	}
}
