// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/stratascout/internal/app/store/audit"
	"github.com/dalemusser/stratascout/internal/app/system/auth"
	"github.com/dalemusser/stratascout/internal/app/system/network"
	"go.uber.org/zap"
)

// Destination settings for a category.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off" // disabled
)

// ActorAPI marks events raised by the public /data endpoint.
const ActorAPI = "api"

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for sign-in and sign-out events.
	Auth string
	// Content controls logging for content edits and contact messages.
	Content string
}

// Valid reports whether v is a known destination setting.
func Valid(v string) bool {
	switch v {
	case All, DB, Log, Off:
		return true
	}
	return false
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil, in which case only zap is used.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// actor identifies the admin session behind r by a short token prefix.
func actor(r *http.Request) string {
	a, ok := auth.CurrentAdmin(r)
	if !ok || a.Token == "" {
		return ""
	}
	if len(a.Token) > 8 {
		return a.Token[:8]
	}
	return a.Token
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.Actor != "" {
		fields = append(fields, zap.String("actor", event.Actor))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// A nil Logger is a no-op.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryContent:
		setting = l.config.Content
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}
	if (setting == All || setting == DB) && l.store != nil {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func fromRequest(r *http.Request, category, eventType string) audit.Event {
	return audit.Event{
		Category:  category,
		EventType: eventType,
		Actor:     actor(r),
		IP:        network.GetClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful admin sign-in. token is the new session token.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, token string) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginSuccess)
	if len(token) > 8 {
		token = token[:8]
	}
	e.Actor = token
	l.Log(ctx, e)
}

// LoginFailed logs a sign-in with the wrong password.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, remaining int) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginFailedWrongPassword)
	e.Success = false
	e.FailureReason = "wrong password"
	e.Details = map[string]string{"remaining": strconv.Itoa(remaining)}
	l.Log(ctx, e)
}

// LoginRateLimited logs a sign-in refused because the client is locked out.
func (l *Logger) LoginRateLimited(ctx context.Context, r *http.Request, lockedUntil *time.Time) {
	e := fromRequest(r, audit.CategoryAuth, audit.EventLoginRateLimited)
	e.Success = false
	e.FailureReason = "too many attempts"
	if lockedUntil != nil {
		e.Details = map[string]string{"locked_until": lockedUntil.UTC().Format(time.RFC3339)}
	}
	l.Log(ctx, e)
}

// Logout logs an admin sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request) {
	l.Log(ctx, fromRequest(r, audit.CategoryAuth, audit.EventLogout))
}

// --- Content Events ---

// SectionUpdated logs a saved section form.
func (l *Logger) SectionUpdated(ctx context.Context, r *http.Request, section string) {
	e := fromRequest(r, audit.CategoryContent, audit.EventSectionUpdated)
	e.Details = map[string]string{"section": section}
	l.Log(ctx, e)
}

// ItemChanged logs an added, edited or deleted list item.
func (l *Logger) ItemChanged(ctx context.Context, r *http.Request, eventType, list string, id int) {
	e := fromRequest(r, audit.CategoryContent, eventType)
	e.Details = map[string]string{"list": list, "id": strconv.Itoa(id)}
	l.Log(ctx, e)
}

// ContentSaved logs a whole-document save through the /data API.
func (l *Logger) ContentSaved(ctx context.Context, r *http.Request, revision string) {
	e := fromRequest(r, audit.CategoryContent, audit.EventContentSaved)
	e.Actor = ActorAPI
	if revision != "" {
		e.Details = map[string]string{"revision": revision}
	}
	l.Log(ctx, e)
}

// ContentSaveFailed logs a rejected or failed save. via is "api" or "admin".
func (l *Logger) ContentSaveFailed(ctx context.Context, r *http.Request, via, reason string) {
	e := fromRequest(r, audit.CategoryContent, audit.EventContentSaveFailed)
	if via == ActorAPI {
		e.Actor = ActorAPI
	}
	e.Success = false
	e.FailureReason = reason
	e.Details = map[string]string{"via": via}
	l.Log(ctx, e)
}

// ContactMessageReceived logs a stored contact form submission.
func (l *Logger) ContactMessageReceived(ctx context.Context, r *http.Request, messageID string) {
	e := fromRequest(r, audit.CategoryContent, audit.EventContactMessageReceived)
	e.Details = map[string]string{"message_id": messageID}
	l.Log(ctx, e)
}

// ContactMessageDeleted logs an admin removing a contact message.
func (l *Logger) ContactMessageDeleted(ctx context.Context, r *http.Request, messageID string) {
	e := fromRequest(r, audit.CategoryContent, audit.EventContactMessageDeleted)
	e.Details = map[string]string{"message_id": messageID}
	l.Log(ctx, e)
}
