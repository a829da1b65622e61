package contentsync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

// fakeDataAPI implements the /data contract in memory.
type fakeDataAPI struct {
	mu       sync.Mutex
	password string
	doc      json.RawMessage
	status   int // forces GET status when non-zero
}

func (f *fakeDataAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		if f.status != 0 {
			w.WriteHeader(f.status)
			return
		}
		_, _ = w.Write(f.doc)
	case http.MethodPost:
		var body struct {
			Password string          `json:"password"`
			Action   string          `json:"action"`
			Data     json.RawMessage `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != f.password {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"Wrong password"}`))
			return
		}
		if body.Action == "verify" {
			_, _ = w.Write([]byte(`{"success":true,"message":"Password verified"}`))
			return
		}
		if len(body.Data) == 0 || string(body.Data) == "null" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"No data provided"}`))
			return
		}
		f.doc = body.Data
		_, _ = w.Write([]byte(`{"success":true,"message":"Data saved successfully"}`))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newRemote(t *testing.T, api *fakeDataAPI) (*RemoteStore, *CacheFile) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	cache := NewCacheFile(t.TempDir())
	return NewRemoteStore(srv.URL+"/data", srv.Client(), cache, zap.NewNop()), cache
}

func TestRemoteStore_LoadMirrorsToCache(t *testing.T) {
	api := &fakeDataAPI{password: "pw", doc: json.RawMessage(`{"hero":{"titleEn":"Remote"}}`)}
	store, cache := newRemote(t, api)

	got := store.Load(context.Background())
	if got.Source != SourceRemote || got.Doc.Hero.TitleEn != "Remote" {
		t.Fatalf("Load() = %q / %q", got.Source, got.Doc.Hero.TitleEn)
	}

	cached, err := cache.Read()
	if err != nil {
		t.Fatalf("cache Read() error = %v", err)
	}
	if cached.Hero.TitleEn != "Remote" {
		t.Errorf("cache TitleEn = %q", cached.Hero.TitleEn)
	}
}

func TestRemoteStore_LoadFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		api    *fakeDataAPI
		seed   bool
		source Source
	}{
		{"non-2xx with cache", &fakeDataAPI{status: http.StatusInternalServerError}, true, SourceCache},
		{"malformed JSON with cache", &fakeDataAPI{doc: json.RawMessage(`<html>`)}, true, SourceCache},
		{"non-2xx without cache", &fakeDataAPI{status: http.StatusBadGateway}, false, SourceDefaults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cache := newRemote(t, tt.api)
			if tt.seed {
				doc := models.DefaultContent()
				doc.Hero.TitleEn = "Cached"
				if err := cache.Write(doc); err != nil {
					t.Fatal(err)
				}
			}
			got := store.Load(context.Background())
			if got.Source != tt.source {
				t.Errorf("Load() source = %q, want %q", got.Source, tt.source)
			}
			if got.Doc.Hero.TitleAr == "" {
				t.Error("Load() must return a populated document")
			}
		})
	}
}

func TestRemoteStore_LoadUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := NewRemoteStore(url+"/data", nil, nil, zap.NewNop())
	got := store.Load(context.Background())
	if got.Source != SourceDefaults {
		t.Errorf("Load() source = %q, want defaults", got.Source)
	}
}

func TestRemoteStore_SaveAndVerify(t *testing.T) {
	api := &fakeDataAPI{password: "admin2026", doc: json.RawMessage(`{}`)}
	store, cache := newRemote(t, api)
	ctx := context.Background()

	if res := store.Verify(ctx, "nope"); res.OK || res.Reason != ReasonUnauthorized || res.Message != "Wrong password" {
		t.Errorf("Verify(nope) = %+v", res)
	}
	if res := store.Verify(ctx, "admin2026"); !res.OK {
		t.Errorf("Verify(admin2026) = %+v", res)
	}
	if res := store.Save(ctx, nil, "admin2026"); res.Reason != ReasonNoData {
		t.Errorf("Save(nil) = %+v, want no-data", res)
	}

	doc := models.DefaultContent()
	doc.Videos = nil
	doc.Hero.TitleEn = "Saved remotely"
	if res := store.Save(ctx, &doc, "admin2026"); !res.OK {
		t.Fatalf("Save() = %+v", res)
	}

	got := store.Load(ctx)
	if got.Doc.Hero.TitleEn != "Saved remotely" {
		t.Errorf("Load() TitleEn = %q", got.Doc.Hero.TitleEn)
	}
	if got.Doc.Videos == nil || len(got.Doc.Videos) != 0 {
		t.Errorf("empty video list should survive the round trip: %v", got.Doc.Videos)
	}
	if cached, _ := cache.Read(); cached.Hero.TitleEn != "Saved remotely" {
		t.Errorf("cache TitleEn = %q", cached.Hero.TitleEn)
	}
}

func TestRemoteStore_WrongPasswordKeepsDocument(t *testing.T) {
	api := &fakeDataAPI{password: "admin2026", doc: json.RawMessage(`{"hero":{"titleEn":"Original"}}`)}
	store, _ := newRemote(t, api)
	ctx := context.Background()

	doc := models.DefaultContent()
	doc.Hero.TitleEn = "Overwritten"
	if res := store.Save(ctx, &doc, "wrong"); res.OK {
		t.Fatal("Save() with wrong password should fail")
	}
	if got := store.Load(ctx); got.Doc.Hero.TitleEn != "Original" {
		t.Errorf("Load() TitleEn = %q, want Original", got.Doc.Hero.TitleEn)
	}
}
