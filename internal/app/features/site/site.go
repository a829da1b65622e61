// internal/app/features/site/site.go
package site

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/render"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Content supplies the current document.
type Content interface {
	Current(ctx context.Context) contentsync.Loaded
}

// Handler serves the public site and the preference toggles.
type Handler struct {
	content Content
	secure  bool
	logger  *zap.Logger
}

// NewHandler creates a site Handler. secure marks preference cookies Secure.
func NewHandler(content Content, secure bool, logger *zap.Logger) *Handler {
	return &Handler{content: content, secure: secure, logger: logger}
}

var homeTitle = i18n.Message{Ar: "الرئيسية", En: "Home"}

type homeData struct {
	viewdata.BaseVM
	Page render.Page
}

// Routes mounts / and the preference toggles.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/lang/{lang}", h.SetLang)
	r.Get("/theme/{theme}", h.SetTheme)
	return r
}

// Home renders the public page in the visitor's language.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	st := appstate.From(r)
	loaded := h.content.Current(r.Context())

	vm := viewdata.FromState(r, st, homeTitle)
	vm.Events = true

	data := homeData{
		BaseVM: vm,
		Page:   render.Render(loaded.Doc, st.Lang, vm.Year),
	}
	templates.Render(w, r, "site/home", data)
}

// SetLang stores the language preference and goes back.
func (h *Handler) SetLang(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.Parse(chi.URLParam(r, "lang"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	i18n.SetCookie(w, lang, h.secure)
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

// SetTheme stores the theme preference and goes back.
func (h *Handler) SetTheme(w http.ResponseWriter, r *http.Request) {
	theme, ok := appstate.ParseTheme(chi.URLParam(r, "theme"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	appstate.SetThemeCookie(w, theme, h.secure)
	http.Redirect(w, r, returnTo(r), http.StatusSeeOther)
}

// returnTo is the ?return= path when it stays on this site, else "/".
func returnTo(r *http.Request) string {
	ret := r.URL.Query().Get("return")
	if !strings.HasPrefix(ret, "/") || strings.HasPrefix(ret, "//") || strings.HasPrefix(ret, "/\\") {
		return "/"
	}
	return ret
}
