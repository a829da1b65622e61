package admin

import (
	"net/http"
	"strings"

	ratelimitstore "github.com/dalemusser/stratascout/internal/app/store/ratelimit"
	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/network"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

var loginTitle = i18n.Message{Ar: "تسجيل الدخول", En: "Log in"}

// loginVM is the view model for the sign-in page.
type loginVM struct {
	viewdata.BaseVM
	ReturnURL string
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, ret string, msg i18n.Message) {
	vm := loginVM{BaseVM: viewdata.New(r, loginTitle), ReturnURL: ret}
	if !msg.IsZero() {
		vm.BaseVM = vm.WithFlash(msg, true)
	}
	w.WriteHeader(status)
	templates.Render(w, r, "admin/login", vm)
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if appstate.From(r).Admin {
		http.Redirect(w, r, safeReturn(r.URL.Query().Get("return")), http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, r.URL.Query().Get("return"), i18n.Message{})
}

// handleLogin checks the password with the content store, so the same
// secret that guards saves also guards the session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	password := r.PostFormValue("password")
	ret := r.PostFormValue("return")
	ctx := r.Context()
	key := ratelimitstore.Key(ratelimitstore.ScopeLogin, network.GetClientIP(r))

	if h.limiter != nil {
		if allowed, _, lockedUntil := h.limiter.CheckAllowed(ctx, key); !allowed {
			h.audit.LoginRateLimited(ctx, r, lockedUntil)
			h.renderLogin(w, r, http.StatusTooManyRequests, ret, i18n.TooManyAttempts)
			return
		}
	}

	vctx, cancel := timeouts.WithTimeout(ctx, timeouts.Remote(), h.logger, "admin login verify")
	res := h.content.Verify(vctx, password)
	cancel()

	if !res.OK {
		remaining := -1
		if h.limiter != nil {
			lockedOut, lockedUntil := h.limiter.RecordFailure(ctx, key)
			if lockedOut {
				h.audit.LoginRateLimited(ctx, r, lockedUntil)
				h.renderLogin(w, r, http.StatusTooManyRequests, ret, i18n.TooManyAttempts)
				return
			}
			_, remaining, _ = h.limiter.CheckAllowed(ctx, key)
		}
		h.audit.LoginFailed(ctx, r, remaining)
		h.logger.Warn("admin login failed",
			zap.String("ip", network.GetClientIP(r)),
			zap.String("reason", string(res.Reason)))
		h.renderLogin(w, r, http.StatusUnauthorized, ret, i18n.SaveOutcome(res))
		return
	}

	if h.limiter != nil {
		_ = h.limiter.ClearOnSuccess(ctx, key)
	}

	token, err := h.sessions.SignIn(w, r, password)
	if err != nil {
		h.errLog.Log(r, "failed to save admin session", err)
		h.errPages.InternalError(w, r)
		return
	}
	h.audit.LoginSuccess(ctx, r, token)

	http.Redirect(w, r, viewdata.FlashURL(safeReturn(ret), "logged-in"), http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if appstate.From(r).Admin {
		h.audit.Logout(r.Context(), r)
	}
	h.sessions.SignOut(w, r)
	http.Redirect(w, r, viewdata.FlashURL("/", "logged-out"), http.StatusSeeOther)
}

// safeReturn keeps post-login redirects on this site's editor.
func safeReturn(ret string) string {
	if !strings.HasPrefix(ret, "/admin") || strings.HasPrefix(ret, "/admin/login") {
		return "/admin/hero"
	}
	return ret
}
