package resources

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAssetsHandler(t *testing.T) {
	h := AssetsHandler("/assets")

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"stylesheet", http.MethodGet, "/assets/css/site.css", http.StatusOK},
		{"script head", http.MethodHead, "/assets/js/site.js", http.StatusOK},
		{"missing", http.MethodGet, "/assets/css/nope.css", http.StatusNotFound},
		{"directory", http.MethodGet, "/assets/css/", http.StatusNotFound},
		{"root", http.MethodGet, "/assets/", http.StatusNotFound},
		{"post", http.MethodPost, "/assets/css/site.css", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK && rec.Header().Get("Cache-Control") != assetMaxAge {
				t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestAssetsHandler_ContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	AssetsHandler("/assets").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Content-Type = %q", ct)
	}
}
