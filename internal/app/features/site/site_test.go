package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/dalemusser/stratascout/internal/testutil"
	"go.uber.org/zap"
)

type staticContent models.ContentDocument

func (s staticContent) Current(ctx context.Context) contentsync.Loaded {
	return contentsync.Loaded{Doc: models.ContentDocument(s), Source: contentsync.SourceDefaults}
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	appstate.Middleware(h).ServeHTTP(rec, testutil.WithCSRFToken(req))
	return rec
}

func TestHome_RendersBothLanguages(t *testing.T) {
	testutil.MustBootTemplates(t)

	doc := models.DefaultContent()
	doc.Videos = nil
	h := Routes(NewHandler(staticContent(doc), false, zap.NewNop()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: i18n.CookieName, Value: "en"})
	rec := serve(t, h, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`lang="en"`,
		`dir="ltr"`,
		`data-events="/events"`,
		doc.Hero.TitleEn,
		doc.Hero.TitleAr, // carried in data-ar for client-side toggling
		"No videos yet",
		`name="csrf_token"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func TestHome_DefaultsToArabic(t *testing.T) {
	testutil.MustBootTemplates(t)

	h := Routes(NewHandler(staticContent(models.DefaultContent()), false, zap.NewNop()))
	rec := serve(t, h, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `lang="ar"`) || !strings.Contains(body, `dir="rtl"`) {
		t.Error("page should default to Arabic, right to left")
	}
}

func TestSetLang(t *testing.T) {
	h := Routes(NewHandler(staticContent{}, true, zap.NewNop()))

	tests := []struct {
		name     string
		target   string
		status   int
		location string
	}{
		{"english", "/lang/en?return=/%23videos", http.StatusSeeOther, "/#videos"},
		{"arabic no return", "/lang/ar", http.StatusSeeOther, "/"},
		{"offsite return", "/lang/en?return=//evil.example", http.StatusSeeOther, "/"},
		{"unknown", "/lang/fr", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.location == "" {
				return
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
			cookies := rec.Result().Cookies()
			if len(cookies) != 1 || cookies[0].Name != i18n.CookieName || !cookies[0].Secure {
				t.Errorf("cookies = %+v", cookies)
			}
		})
	}
}

func TestSetTheme(t *testing.T) {
	h := Routes(NewHandler(staticContent{}, false, zap.NewNop()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/theme/dark?return=/admin", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("status = %d location = %q", rec.Code, rec.Header().Get("Location"))
	}
	c := rec.Result().Cookies()
	if len(c) != 1 || c[0].Name != appstate.ThemeCookie || c[0].Value != "dark" {
		t.Errorf("cookies = %+v", c)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/theme/neon", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown theme status = %d", rec.Code)
	}
}
