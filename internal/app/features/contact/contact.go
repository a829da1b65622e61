// Package contact receives the public contact form.
package contact

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/stratascout/internal/app/system/auditlog"
	"github.com/dalemusser/stratascout/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/inputval"
	"github.com/dalemusser/stratascout/internal/app/system/jsonutil"
	"github.com/dalemusser/stratascout/internal/app/system/mailer"
	"github.com/dalemusser/stratascout/internal/app/system/network"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Field limits, in runes.
const (
	maxName    = 120
	maxEmail   = 254
	maxMessage = 5000
)

// Messages stores submissions.
type Messages interface {
	Create(ctx context.Context, m models.ContactMessage) (models.ContactMessage, error)
}

// Notifier is told about new submissions.
type Notifier struct {
	Sender   mailer.Sender
	To       string
	InboxURL string
}

// Handler handles POST /contact.
type Handler struct {
	messages Messages
	notify   Notifier
	audit    *auditlog.Logger
	logger   *zap.Logger
}

// NewHandler creates a contact Handler. A Notifier with no Sender or no
// recipient sends nothing.
func NewHandler(messages Messages, notify Notifier, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{messages: messages, notify: notify, audit: audit, logger: logger}
}

// Routes mounts the form endpoint.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.Submit)
	return r
}

type input struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,siteemail"`
	Message string `json:"message" validate:"required"`
	Lang    i18n.Lang
}

func readInput(r *http.Request) input {
	lang, ok := i18n.Parse(r.FormValue("lang"))
	if !ok {
		lang = i18n.Resolve(r)
	}
	return input{
		Name:    htmlsanitize.Clean(r.FormValue("name"), maxName),
		Email:   strings.TrimSpace(htmlsanitize.Clean(r.FormValue("email"), maxEmail)),
		Message: htmlsanitize.Clean(r.FormValue("message"), maxMessage),
		Lang:    lang,
	}
}

// validate returns the flash code of the first problem, or "".
func (in input) validate() (string, i18n.Message) {
	fe, ok := inputval.Validate(in).First()
	if !ok {
		return "", i18n.Message{}
	}
	switch fe.Field {
	case "name":
		return "name-required", i18n.NameRequired
	case "email":
		if fe.Rule == "required" {
			return "email-required", i18n.EmailRequired
		}
		return "email-invalid", i18n.EmailInvalid
	default:
		return "message-required", i18n.MessageRequired
	}
}

// Submit validates and stores a message, then notifies the admin.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.reply(w, r, http.StatusBadRequest, "contact-failed", i18n.ContactFailed)
		return
	}
	in := readInput(r)

	if code, msg := in.validate(); code != "" {
		h.reply(w, r, http.StatusBadRequest, code, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "contact create")
	defer cancel()

	saved, err := h.messages.Create(ctx, models.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Lang:    string(in.Lang),
		IP:      network.GetClientIP(r),
	})
	if err != nil {
		h.logger.Error("failed to store contact message", zap.Error(err))
		h.reply(w, r, http.StatusInternalServerError, "contact-failed", i18n.ContactFailed)
		return
	}

	h.audit.ContactMessageReceived(r.Context(), r, saved.ID.Hex())
	h.logger.Info("contact message received",
		zap.String("id", saved.ID.Hex()),
		zap.String("lang", saved.Lang))

	if h.notify.Sender != nil && h.notify.To != "" {
		go h.sendNotification(saved)
	}

	h.reply(w, r, http.StatusOK, "contact-sent", i18n.ContactSent)
}

func (h *Handler) sendNotification(m models.ContactMessage) {
	subject, text, html := mailer.ContactNotificationEmail(mailer.ContactNotificationData{
		SiteName:  viewdata.SiteName.String(),
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Lang:      m.Lang,
		InboxURL:  h.notify.InboxURL,
		CreatedAt: m.CreatedAt,
	})
	err := h.notify.Sender.Send(mailer.Email{
		To:       h.notify.To,
		ReplyTo:  m.Email,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	})
	if err != nil {
		h.logger.Warn("contact notification not sent",
			zap.String("id", m.ID.Hex()),
			zap.Error(err))
	}
}

// reply answers scripts with JSON and plain form posts with a redirect back
// to the contact section.
func (h *Handler) reply(w http.ResponseWriter, r *http.Request, status int, code string, msg i18n.Message) {
	if wantsJSON(r) {
		body := map[string]any{
			"code":       code,
			"message_ar": msg.Ar,
			"message_en": msg.En,
		}
		if status == http.StatusOK {
			body["success"] = true
		} else {
			body["error"] = msg.En
		}
		jsonutil.JSON(w, status, body)
		return
	}
	http.Redirect(w, r, viewdata.FlashURL("/#contact", code), http.StatusSeeOther)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
