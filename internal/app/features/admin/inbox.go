package admin

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	messagestore "github.com/dalemusser/stratascout/internal/app/store/messages"
	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const inboxPageSize = 50

type messageRow struct {
	ID      string
	Name    string
	Email   string
	Body    template.HTML
	Lang    string
	Read    bool
	Created string
}

type messagesVM struct {
	pageVM
	Rows       []messageRow
	UnreadOnly bool
	Page       int64
	PrevPage   int64
	NextPage   int64
}

func (h *Handler) showMessages(w http.ResponseWriter, r *http.Request) {
	if h.inbox == nil {
		h.errPages.NotFound(w, r)
		return
	}

	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	unreadOnly := r.URL.Query().Get("unread") == "1"

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "inbox list")
	defer cancel()

	msgs, err := h.inbox.List(ctx, unreadOnly, inboxPageSize+1, page)
	if err != nil {
		h.errLog.Log(r, "failed to list contact messages", err)
		h.errPages.InternalError(w, r)
		return
	}

	vm := messagesVM{
		pageVM:     h.page(r, appstate.From(r), "messages", tabLabel("messages")),
		UnreadOnly: unreadOnly,
		Page:       page,
	}
	if page > 1 {
		vm.PrevPage = page - 1
	}
	if len(msgs) > inboxPageSize {
		msgs = msgs[:inboxPageSize]
		vm.NextPage = page + 1
	}
	for _, m := range msgs {
		vm.Rows = append(vm.Rows, messageRow{
			ID:      m.ID.Hex(),
			Name:    m.Name,
			Email:   m.Email,
			Body:    htmlsanitize.Paragraphs(m.Message),
			Lang:    m.Lang,
			Read:    m.Read,
			Created: m.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	templates.Render(w, r, "admin/messages", vm)
}

func (h *Handler) messageID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	if h.inbox == nil {
		h.errPages.NotFound(w, r)
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.errPages.NotFound(w, r)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) markMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}
	read := r.PostFormValue("read") != "false"

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "inbox mark read")
	defer cancel()

	if err := h.inbox.MarkRead(ctx, id, read); err != nil {
		h.inboxError(w, r, "failed to mark contact message", err)
		return
	}
	http.Redirect(w, r, "/admin/messages", http.StatusSeeOther)
}

func (h *Handler) deleteMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.messageID(w, r)
	if !ok {
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "inbox delete")
	defer cancel()

	if err := h.inbox.Delete(ctx, id); err != nil {
		h.inboxError(w, r, "failed to delete contact message", err)
		return
	}
	h.audit.ContactMessageDeleted(r.Context(), r, id.Hex())
	http.Redirect(w, r, viewdata.FlashURL("/admin/messages", "message-deleted"), http.StatusSeeOther)
}

func (h *Handler) inboxError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if errors.Is(err, messagestore.ErrNotFound) {
		http.Redirect(w, r, viewdata.FlashURL("/admin/messages", "item-not-found"), http.StatusSeeOther)
		return
	}
	h.logger.Warn(msg, zap.Error(err))
	h.errPages.InternalError(w, r)
}
