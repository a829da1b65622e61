package admin

import (
	"net/http"

	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/editor"
	"github.com/dalemusser/stratascout/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxFieldLen bounds every stored text field, in runes.
const maxFieldLen = 4000

type sectionVM struct {
	pageVM
	Section string
	Fields  []field
}

func (h *Handler) showSection(w http.ResponseWriter, r *http.Request, section string) {
	doc := h.content.Current(r.Context()).Doc
	h.renderSection(w, r, http.StatusOK, section, doc, i18n.Message{})
}

func (h *Handler) renderSection(w http.ResponseWriter, r *http.Request, status int, section string, doc models.ContentDocument, failure i18n.Message) {
	fields, err := sectionFields(doc, section)
	if err != nil {
		h.errPages.NotFound(w, r)
		return
	}
	vm := sectionVM{
		pageVM:  h.page(r, appstate.From(r), section, tabLabel(section)),
		Section: section,
		Fields:  fields,
	}
	if !failure.IsZero() {
		vm.BaseVM = vm.WithFlash(failure, true)
	}
	w.WriteHeader(status)
	templates.Render(w, r, "admin/section", vm)
}

// saveSection overwrites every field of a section with the submitted form.
func (h *Handler) saveSection(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	if !isSection(section) {
		h.errPages.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	loaded := h.content.Current(r.Context())
	doc := loaded.Doc.Clone()
	if err := editor.SetSection(&doc, section, formValue(r)); err != nil {
		h.errLog.Log(r, "failed to apply section", err)
		h.errPages.InternalError(w, r)
		return
	}

	res := h.save(r, loaded, &doc)
	if !res.OK {
		h.renderSection(w, r, saveStatus(res), section, doc, i18n.SaveOutcome(res))
		return
	}
	h.audit.SectionUpdated(r.Context(), r, section)
	http.Redirect(w, r, viewdata.FlashURL("/admin/"+section, viewdata.SaveFlash(res)), http.StatusSeeOther)
}

// formValue reads plain text from the posted form.
func formValue(r *http.Request) func(string) string {
	return func(key string) string {
		return htmlsanitize.Clean(r.PostFormValue(key), maxFieldLen)
	}
}

// degradedSnapshot refuses an edit made on defaults that stand in for
// stored content the server could not read.
var degradedSnapshot = contentsync.SaveResult{
	Reason:  contentsync.ReasonStorageUnavailable,
	Message: "stored content could not be loaded",
}

// save writes doc, an edit of the loaded snapshot, with the session's
// credential and logs failures.
func (h *Handler) save(r *http.Request, loaded contentsync.Loaded, doc *models.ContentDocument) contentsync.SaveResult {
	st := appstate.From(r)
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Remote(), h.logger, "admin save")
	defer cancel()

	res := degradedSnapshot
	if !loaded.Degraded {
		res = h.content.Save(ctx, doc, st.Credential())
	}
	if !res.OK {
		h.logger.Warn("admin save failed",
			zap.String("path", r.URL.Path),
			zap.String("reason", string(res.Reason)),
			zap.String("message", res.Message))
		h.audit.ContentSaveFailed(r.Context(), r, "admin", string(res.Reason))
	}
	return res
}

func saveStatus(res contentsync.SaveResult) int {
	switch res.Reason {
	case contentsync.ReasonUnauthorized:
		return http.StatusUnauthorized
	case contentsync.ReasonNoData:
		return http.StatusBadRequest
	case contentsync.ReasonStorageUnavailable, contentsync.ReasonQuotaExceeded:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
