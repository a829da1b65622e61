// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/render"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// SiteName is shown in page titles and the header.
var SiteName = i18n.Message{Ar: "مجموعة الكشافة", En: "Scout Group"}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{BaseVM: viewdata.New(r, title)}
type BaseVM struct {
	Lang       i18n.Lang
	OtherLang  i18n.Lang
	Dir        string
	Theme      appstate.Theme
	OtherTheme appstate.Theme
	IsAdmin    bool

	SiteName    i18n.Message
	Title       i18n.Message
	CurrentPath string
	Year        int

	// Flash is a one-off status line; FlashError marks it as a failure.
	Flash      i18n.Message
	FlashError bool

	// Events makes the page reload when the content changes.
	Events bool

	// Security
	CSRFToken string // CSRF token for forms (use in hidden input field)
}

// New creates a BaseVM from the request's application state.
func New(r *http.Request, title i18n.Message) BaseVM {
	return FromState(r, appstate.From(r), title)
}

// FromState creates a BaseVM from an explicit state.
func FromState(r *http.Request, st appstate.State, title i18n.Message) BaseVM {
	vm := BaseVM{
		Lang:        st.Lang,
		OtherLang:   st.Lang.Other(),
		Dir:         st.Dir(),
		Theme:       st.Theme,
		OtherTheme:  st.Theme.Other(),
		IsAdmin:     st.Admin,
		SiteName:    SiteName,
		Title:       title,
		CurrentPath: httpnav.CurrentPath(r),
		Year:        time.Now().Year(),
		CSRFToken:   csrf.Token(r),
	}
	if msg, isErr, ok := LookupFlash(r.URL.Query().Get(FlashParam)); ok {
		vm.Flash, vm.FlashError = msg, isErr
	}
	return vm
}

// WithFlash returns vm with a status line.
func (vm BaseVM) WithFlash(m i18n.Message, isError bool) BaseVM {
	vm.Flash = m
	vm.FlashError = isError
	return vm
}

// T picks the text of m in the page language. Templates call it as
// {{.T .Title}}.
func (vm BaseVM) T(m i18n.Message) string {
	return m.In(vm.Lang)
}

// L is a fixed bilingual label, {{template "bi" (.L "نص" "Text")}}.
func (vm BaseVM) L(ar, en string) render.Text {
	return render.Message(vm.Lang, i18n.Message{Ar: ar, En: en})
}

// M is m as a bilingual label.
func (vm BaseVM) M(m i18n.Message) render.Text {
	return render.Message(vm.Lang, m)
}
