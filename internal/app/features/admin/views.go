package admin

import (
	"net/http"
	"strings"

	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/app/system/editor"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/app/system/render"
	"github.com/dalemusser/stratascout/internal/app/system/viewdata"
	"github.com/dalemusser/stratascout/internal/domain/models"
)

// tab is one entry in the editor's tab bar.
type tab struct {
	Key    string
	Label  i18n.Message
	Active bool
	Badge  int64
}

var tabOrder = []tab{
	{Key: "hero", Label: i18n.Message{Ar: "الواجهة", En: "Hero"}},
	{Key: "about", Label: i18n.Message{Ar: "من نحن", En: "About"}},
	{Key: "leader", Label: i18n.Message{Ar: "القائد", En: "Leader"}},
	{Key: "contact", Label: i18n.Message{Ar: "التواصل", En: "Contact"}},
	{Key: "achievements", Label: i18n.Message{Ar: "الإنجازات", En: "Achievements"}},
	{Key: "participation", Label: i18n.Message{Ar: "المشاركات", En: "Participation"}},
	{Key: "videos", Label: i18n.Message{Ar: "الفيديوهات", En: "Videos"}},
	{Key: "messages", Label: i18n.Message{Ar: "الرسائل", En: "Messages"}},
	{Key: "activity", Label: i18n.Message{Ar: "السجل", En: "Activity"}},
}

func tabLabel(key string) i18n.Message {
	for _, t := range tabOrder {
		if t.Key == key {
			return t.Label
		}
	}
	return i18n.Message{Ar: key, En: key}
}

// pageVM is the part every editor page shares.
type pageVM struct {
	viewdata.BaseVM
	Tabs []tab
}

func (h *Handler) page(r *http.Request, st appstate.State, active string, title i18n.Message) pageVM {
	tabs := make([]tab, 0, len(tabOrder))
	for _, t := range tabOrder {
		if t.Key == "messages" && h.inbox == nil {
			continue
		}
		if t.Key == "activity" && h.activity == nil {
			continue
		}
		t.Active = t.Key == active
		if t.Key == "messages" {
			if n, err := h.inbox.CountUnread(r.Context()); err == nil {
				t.Badge = n
			}
		}
		tabs = append(tabs, t)
	}
	vm := pageVM{BaseVM: viewdata.FromState(r, st, title), Tabs: tabs}
	if vm.Flash.IsZero() && h.content.Current(r.Context()).Degraded {
		vm.BaseVM = vm.WithFlash(i18n.ContentDegraded, true)
	}
	return vm
}

// field is one input on a section or item form.
type field struct {
	Key   string
	Label i18n.Message
	Kind  string // text, textarea, url, icon
	Value string
	Dir   string // rtl for Arabic inputs, ltr for English ones

	Options []iconOption // icon fields only
}

var fieldLabels = map[string]i18n.Message{
	"titleAr":         {Ar: "العنوان (عربي)", En: "Title (Arabic)"},
	"titleEn":         {Ar: "العنوان (إنجليزي)", En: "Title (English)"},
	"subtitleAr":      {Ar: "العنوان الفرعي (عربي)", En: "Subtitle (Arabic)"},
	"subtitleEn":      {Ar: "العنوان الفرعي (إنجليزي)", En: "Subtitle (English)"},
	"missionAr":       {Ar: "الرسالة (عربي)", En: "Mission (Arabic)"},
	"missionEn":       {Ar: "الرسالة (إنجليزي)", En: "Mission (English)"},
	"valuesAr":        {Ar: "القيم (عربي)", En: "Values (Arabic)"},
	"valuesEn":        {Ar: "القيم (إنجليزي)", En: "Values (English)"},
	"memberCount":     {Ar: "عدد الأعضاء", En: "Member count"},
	"establishedYear": {Ar: "سنة التأسيس", En: "Established year"},
	"nameAr":          {Ar: "الاسم (عربي)", En: "Name (Arabic)"},
	"nameEn":          {Ar: "الاسم (إنجليزي)", En: "Name (English)"},
	"bioAr":           {Ar: "نبذة (عربي)", En: "Bio (Arabic)"},
	"bioEn":           {Ar: "نبذة (إنجليزي)", En: "Bio (English)"},
	"experienceAr":    {Ar: "الخبرة (عربي)", En: "Experience (Arabic)"},
	"experienceEn":    {Ar: "الخبرة (إنجليزي)", En: "Experience (English)"},
	"descAr":          {Ar: "الوصف (عربي)", En: "Description (Arabic)"},
	"descEn":          {Ar: "الوصف (إنجليزي)", En: "Description (English)"},
	"email":           {Ar: "البريد الإلكتروني", En: "Email"},
	"phone":           {Ar: "الهاتف", En: "Phone"},
	"addressAr":       {Ar: "العنوان (عربي)", En: "Address (Arabic)"},
	"addressEn":       {Ar: "العنوان (إنجليزي)", En: "Address (English)"},
	"year":            {Ar: "السنة", En: "Year"},
	"icon":            {Ar: "الأيقونة", En: "Icon"},
	"statsAr":         {Ar: "الإحصائية (عربي)", En: "Stats (Arabic)"},
	"statsEn":         {Ar: "الإحصائية (إنجليزي)", En: "Stats (English)"},
	"url":             {Ar: "رابط الفيديو", En: "Video URL"},
	"thumbnail":       {Ar: "رابط الصورة المصغرة", En: "Thumbnail URL"},
}

var longFields = []string{"mission", "values", "bio", "experience", "desc"}

func newField(key, value string) field {
	f := field{Key: key, Label: fieldLabels[key], Kind: "text", Value: value}
	for _, p := range longFields {
		if strings.HasPrefix(key, p) {
			f.Kind = "textarea"
		}
	}
	switch {
	case key == "icon":
		f.Kind = "icon"
		f.Options = iconOptions(value)
	case key == "url" || key == "thumbnail":
		f.Kind = "url"
	case key == "email":
		f.Kind = "email"
	}
	switch {
	case strings.HasSuffix(key, "Ar"):
		f.Dir = "rtl"
	case strings.HasSuffix(key, "En"), f.Kind == "url", f.Kind == "email":
		f.Dir = "ltr"
	}
	if f.Label.IsZero() {
		f.Label = i18n.Message{Ar: key, En: key}
	}
	return f
}

func isSection(s string) bool {
	for _, name := range contentdoc.Sections {
		if name == s {
			return true
		}
	}
	return false
}

func sectionFields(doc models.ContentDocument, section string) ([]field, error) {
	keys, err := contentdoc.SectionKeys(section)
	if err != nil {
		return nil, err
	}
	values, err := contentdoc.SectionValues(doc, section)
	if err != nil {
		return nil, err
	}
	out := make([]field, len(keys))
	for i, k := range keys {
		out[i] = newField(k, values[k])
	}
	return out, nil
}

var listKeys = map[editor.List][]string{
	editor.Achievements:  {"year", "icon", "titleAr", "titleEn", "descAr", "descEn"},
	editor.Participation: {"icon", "titleAr", "titleEn", "descAr", "descEn", "statsAr", "statsEn"},
	editor.Videos:        {"titleAr", "titleEn", "url", "thumbnail"},
}

func itemValues(in editor.Item) map[string]string {
	return map[string]string{
		"year":      in.Year,
		"icon":      in.Icon,
		"titleAr":   in.TitleAr,
		"titleEn":   in.TitleEn,
		"descAr":    in.DescAr,
		"descEn":    in.DescEn,
		"statsAr":   in.StatsAr,
		"statsEn":   in.StatsEn,
		"url":       in.URL,
		"thumbnail": in.Thumbnail,
	}
}

func itemFields(list editor.List, in editor.Item) []field {
	values := itemValues(in)
	keys := listKeys[list]
	out := make([]field, len(keys))
	for i, k := range keys {
		out[i] = newField(k, values[k])
	}
	return out
}

// row is one item in a list tab.
type row struct {
	ID    int
	Icon  string
	Meta  string
	Title render.Text
	Desc  render.Text
	Thumb string
}

func listRows(page render.Page, list editor.List) []row {
	var out []row
	switch list {
	case editor.Achievements:
		for _, c := range page.Achievements {
			out = append(out, row{ID: c.ID, Icon: c.Icon, Meta: c.Year, Title: c.Title, Desc: c.Desc})
		}
	case editor.Participation:
		for _, c := range page.Participation {
			out = append(out, row{ID: c.ID, Icon: c.Icon, Meta: c.Stats.Value, Title: c.Title, Desc: c.Desc})
		}
	case editor.Videos:
		for _, c := range page.Videos {
			out = append(out, row{ID: c.ID, Meta: c.URL, Title: c.Title, Thumb: c.Thumbnail})
		}
	}
	return out
}

// iconOption is models.IconOption with the selection state for a form.
type iconOption struct {
	Value    string
	Label    i18n.Message
	Selected bool
}

func iconOptions(selected string) []iconOption {
	out := make([]iconOption, len(models.IconOptions))
	for i, o := range models.IconOptions {
		out[i] = iconOption{
			Value:    o.Value,
			Label:    i18n.Message{Ar: o.LabelAr, En: o.LabelEn},
			Selected: o.Value == selected,
		}
	}
	return out
}
