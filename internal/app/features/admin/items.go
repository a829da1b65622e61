package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/stratascout/internal/app/store/audit"
	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/editor"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/render"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type listVM struct {
	pageVM
	List  editor.List
	Rows  []row
	Empty bool
}

type itemVM struct {
	pageVM
	List    editor.List
	Editing editor.Target
	Fields  []field
	Item    render.Text
}

func (h *Handler) showList(w http.ResponseWriter, r *http.Request, list editor.List) {
	st := appstate.From(r)
	doc := h.content.Current(r.Context()).Doc
	pv := h.page(r, st, string(list), tabLabel(string(list)))

	rows := listRows(render.Render(doc, st.Lang, pv.Year), list)
	templates.Render(w, r, "admin/list", listVM{
		pageVM: pv,
		List:   list,
		Rows:   rows,
		Empty:  len(rows) == 0,
	})
}

// target reads the list and id from the URL. id is 0 for new items.
func target(r *http.Request) (editor.Target, bool) {
	list, ok := editor.ParseList(chi.URLParam(r, "tab"))
	if !ok {
		return editor.Target{}, false
	}
	t := editor.Target{List: list, Mode: editor.Viewing}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return editor.Target{}, false
		}
		t.ID = id
	}
	return t, true
}

func listURL(list editor.List, code string) string {
	return viewdata.FlashURL("/admin/"+string(list), code)
}

func (h *Handler) renderItem(w http.ResponseWriter, r *http.Request, status int, t editor.Target, in editor.Item, failure i18n.Message) {
	st := appstate.From(r).WithEditing(t)
	vm := itemVM{
		pageVM:  h.page(r, st, string(t.List), tabLabel(string(t.List))),
		List:    t.List,
		Editing: st.Editing,
		Fields:  itemFields(t.List, in),
		Item:    render.Message(st.Lang, i18n.Message{Ar: in.TitleAr, En: in.TitleEn}),
	}
	if !failure.IsZero() {
		vm.BaseVM = vm.WithFlash(failure, true)
	}

	name := "admin/item_form"
	if st.Editing.Mode == editor.Deleting {
		name = "admin/item_delete"
	}
	w.WriteHeader(status)
	templates.Render(w, r, name, vm)
}

// readItem reads the item form. Unknown icons fall back to the list default.
func readItem(r *http.Request) editor.Item {
	get := formValue(r)
	in := editor.Item{
		Year:      get("year"),
		Icon:      get("icon"),
		TitleAr:   get("titleAr"),
		TitleEn:   get("titleEn"),
		DescAr:    get("descAr"),
		DescEn:    get("descEn"),
		StatsAr:   get("statsAr"),
		StatsEn:   get("statsEn"),
		URL:       get("url"),
		Thumbnail: get("thumbnail"),
	}
	if in.Icon != "" && !models.IsKnownIcon(in.Icon) {
		in.Icon = ""
	}
	return in
}

// step applies ev, answering 409 when the workflow does not allow it.
func (h *Handler) step(w http.ResponseWriter, r *http.Request, t editor.Target, ev editor.Event) (editor.Target, bool) {
	next, err := t.Step(ev)
	if err != nil {
		h.errLog.Log(r, "invalid editor transition", err)
		http.Error(w, "Conflict", http.StatusConflict)
		return t, false
	}
	return next, true
}

func (h *Handler) newItem(w http.ResponseWriter, r *http.Request) {
	t, ok := target(r)
	if !ok || t.ID != 0 {
		h.errPages.NotFound(w, r)
		return
	}
	if t, ok = h.step(w, r, t, editor.EventEdit); !ok {
		return
	}
	h.renderItem(w, r, http.StatusOK, t, editor.Item{}, i18n.Message{})
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	t, ok := target(r)
	if !ok {
		h.errPages.NotFound(w, r)
		return
	}
	// The form is shown in editing mode; the post resolves it.
	t.Mode = editor.Editing

	if r.PostFormValue("action") == "cancel" {
		if _, ok := h.step(w, r, t, editor.EventCancel); ok {
			http.Redirect(w, r, "/admin/"+string(t.List), http.StatusSeeOther)
		}
		return
	}

	in := readItem(r)
	loaded := h.content.Current(r.Context())
	doc := loaded.Doc.Clone()
	id, err := editor.Add(&doc, t.List, in, h.now())
	if err != nil {
		h.itemError(w, r, t, in, err)
		return
	}

	res := h.save(r, loaded, &doc)
	if !res.OK {
		h.renderItem(w, r, saveStatus(res), t, in, i18n.SaveOutcome(res))
		return
	}
	h.step(w, r, t, editor.EventSave)
	h.audit.ItemChanged(r.Context(), r, audit.EventItemAdded, string(t.List), id)
	http.Redirect(w, r, listURL(t.List, "item-added"), http.StatusSeeOther)
}

func (h *Handler) editItem(w http.ResponseWriter, r *http.Request) {
	t, ok := target(r)
	if !ok || t.ID == 0 {
		h.errPages.NotFound(w, r)
		return
	}
	in, found := editor.Lookup(h.content.Current(r.Context()).Doc, t.List, t.ID)
	if !found {
		http.Redirect(w, r, listURL(t.List, "item-not-found"), http.StatusSeeOther)
		return
	}
	if t, ok = h.step(w, r, t, editor.EventEdit); !ok {
		return
	}
	h.renderItem(w, r, http.StatusOK, t, in, i18n.Message{})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	t, ok := target(r)
	if !ok || t.ID == 0 {
		h.errPages.NotFound(w, r)
		return
	}
	t.Mode = editor.Editing

	if r.PostFormValue("action") == "cancel" {
		if _, ok := h.step(w, r, t, editor.EventCancel); ok {
			http.Redirect(w, r, "/admin/"+string(t.List), http.StatusSeeOther)
		}
		return
	}

	in := readItem(r)
	loaded := h.content.Current(r.Context())
	doc := loaded.Doc.Clone()
	if err := editor.Edit(&doc, t.List, t.ID, in, h.now()); err != nil {
		h.itemError(w, r, t, in, err)
		return
	}

	res := h.save(r, loaded, &doc)
	if !res.OK {
		h.renderItem(w, r, saveStatus(res), t, in, i18n.SaveOutcome(res))
		return
	}
	h.step(w, r, t, editor.EventSave)
	h.audit.ItemChanged(r.Context(), r, audit.EventItemEdited, string(t.List), t.ID)
	http.Redirect(w, r, listURL(t.List, "item-edited"), http.StatusSeeOther)
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	t, ok := target(r)
	if !ok || t.ID == 0 {
		h.errPages.NotFound(w, r)
		return
	}
	in, found := editor.Lookup(h.content.Current(r.Context()).Doc, t.List, t.ID)
	if !found {
		http.Redirect(w, r, listURL(t.List, "item-not-found"), http.StatusSeeOther)
		return
	}
	if t, ok = h.step(w, r, t, editor.EventDelete); !ok {
		return
	}
	h.renderItem(w, r, http.StatusOK, t, in, i18n.Message{})
}

// deleteItem removes the item. Deleting an id that is already gone
// succeeds without writing.
func (h *Handler) deleteItem(w http.ResponseWriter, r *http.Request) {
	t, ok := target(r)
	if !ok || t.ID == 0 {
		h.errPages.NotFound(w, r)
		return
	}
	t.Mode = editor.Deleting

	if r.PostFormValue("action") != "confirm" {
		if _, ok := h.step(w, r, t, editor.EventCancel); ok {
			http.Redirect(w, r, "/admin/"+string(t.List), http.StatusSeeOther)
		}
		return
	}
	if t, ok = h.step(w, r, t, editor.EventConfirm); !ok {
		return
	}

	loaded := h.content.Current(r.Context())
	doc := loaded.Doc.Clone()
	if !editor.Delete(&doc, t.List, t.ID) {
		http.Redirect(w, r, listURL(t.List, "item-deleted"), http.StatusSeeOther)
		return
	}

	res := h.save(r, loaded, &doc)
	if !res.OK {
		http.Redirect(w, r, listURL(t.List, viewdata.SaveFlash(res)), http.StatusSeeOther)
		return
	}
	h.audit.ItemChanged(r.Context(), r, audit.EventItemDeleted, string(t.List), t.ID)
	http.Redirect(w, r, listURL(t.List, "item-deleted"), http.StatusSeeOther)
}

func (h *Handler) itemError(w http.ResponseWriter, r *http.Request, t editor.Target, in editor.Item, err error) {
	var ve *editor.ValidationError
	switch {
	case errors.As(err, &ve):
		h.renderItem(w, r, http.StatusBadRequest, t, in, ve.Message)
	case errors.Is(err, editor.ErrNotFound):
		http.Redirect(w, r, listURL(t.List, "item-not-found"), http.StatusSeeOther)
	default:
		h.errLog.Log(r, "item update failed", err)
		h.errPages.InternalError(w, r)
	}
}
