// Package admin is the content editor: sign-in, the section forms, the
// list item workflow, the contact inbox and the activity log.
package admin

import (
	"context"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/stratascout/internal/app/features/errors"
	"github.com/dalemusser/stratascout/internal/app/store/audit"
	"github.com/dalemusser/stratascout/internal/app/system/auditlog"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/editor"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Content is the document the editor reads and saves.
type Content interface {
	Current(ctx context.Context) contentsync.Loaded
	Save(ctx context.Context, doc *models.ContentDocument, credential string) contentsync.SaveResult
	Verify(ctx context.Context, credential string) contentsync.SaveResult
}

// Sessions signs the admin in and out.
type Sessions interface {
	SignIn(w http.ResponseWriter, r *http.Request, credential string) (string, error)
	SignOut(w http.ResponseWriter, r *http.Request)
}

// Limiter throttles repeated wrong passwords per client.
type Limiter interface {
	CheckAllowed(ctx context.Context, key string) (bool, int, *time.Time)
	RecordFailure(ctx context.Context, key string) (bool, *time.Time)
	ClearOnSuccess(ctx context.Context, key string) error
}

// Inbox holds contact form messages.
type Inbox interface {
	List(ctx context.Context, unreadOnly bool, limit, page int64) ([]models.ContactMessage, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, read bool) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Activity reads the audit trail.
type Activity interface {
	Recent(ctx context.Context, category string, limit int64) ([]audit.Event, error)
}

// Deps collects the handler's collaborators. Limiter, Inbox, Activity and
// Audit may be nil; the matching tabs and checks are then skipped.
type Deps struct {
	Content  Content
	Sessions Sessions
	Limiter  Limiter
	Inbox    Inbox
	Activity Activity
	Audit    *auditlog.Logger
}

// Handler serves /admin.
type Handler struct {
	content  Content
	sessions Sessions
	limiter  Limiter
	inbox    Inbox
	activity Activity
	audit    *auditlog.Logger
	errLog   *errorsfeature.ErrorLogger
	errPages *errorsfeature.Handler
	now      func() time.Time
	logger   *zap.Logger
}

// NewHandler creates an admin Handler.
func NewHandler(deps Deps, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		content:  deps.Content,
		sessions: deps.Sessions,
		limiter:  deps.Limiter,
		inbox:    deps.Inbox,
		activity: deps.Activity,
		audit:    deps.Audit,
		errLog:   errLog,
		errPages: errorsfeature.NewHandler(),
		now:      time.Now,
		logger:   logger,
	}
}

// Routes mounts the editor. requireAdmin guards everything except sign-in.
func Routes(h *Handler, requireAdmin func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(requireAdmin)

		pr.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/hero", http.StatusSeeOther)
		})

		pr.Post("/section/{section}", h.saveSection)

		pr.Get("/messages", h.showMessages)
		pr.Post("/messages/{id}/read", h.markMessage)
		pr.Post("/messages/{id}/delete", h.deleteMessage)

		pr.Get("/activity", h.showActivity)

		// Tabs and lists share the first segment, so they share its name.
		pr.Get("/{tab}", h.showTab)
		pr.Post("/{tab}", h.createItem)
		pr.Get("/{tab}/new", h.newItem)
		pr.Get("/{tab}/{id}/edit", h.editItem)
		pr.Post("/{tab}/{id}", h.updateItem)
		pr.Get("/{tab}/{id}/delete", h.confirmDelete)
		pr.Post("/{tab}/{id}/delete", h.deleteItem)
	})

	return r
}

// showTab dispatches /admin/{tab} to the section or list view.
func (h *Handler) showTab(w http.ResponseWriter, r *http.Request) {
	tab := chi.URLParam(r, "tab")
	if isSection(tab) {
		h.showSection(w, r, tab)
		return
	}
	if list, ok := editor.ParseList(tab); ok {
		h.showList(w, r, list)
		return
	}
	h.errPages.NotFound(w, r)
}
