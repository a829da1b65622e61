package admin

import (
	"net/http"
	"sort"
	"strings"

	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
)

type activityRow struct {
	When    string
	Type    string
	Actor   string
	IP      string
	Success bool
	Detail  string
}

type activityVM struct {
	pageVM
	Rows []activityRow
}

const activityLimit = 100

func (h *Handler) showActivity(w http.ResponseWriter, r *http.Request) {
	if h.activity == nil {
		h.errPages.NotFound(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.logger, "activity list")
	defer cancel()

	events, err := h.activity.Recent(ctx, r.URL.Query().Get("category"), activityLimit)
	if err != nil {
		h.errLog.Log(r, "failed to load activity", err)
		h.errPages.InternalError(w, r)
		return
	}

	vm := activityVM{pageVM: h.page(r, appstate.From(r), "activity", tabLabel("activity"))}
	for _, ev := range events {
		row := activityRow{
			When:    ev.CreatedAt.Format("2006-01-02 15:04:05"),
			Type:    ev.EventType,
			Actor:   ev.Actor,
			IP:      ev.IP,
			Success: ev.Success,
			Detail:  ev.FailureReason,
		}
		if row.Detail == "" {
			row.Detail = describe(ev.Details)
		}
		vm.Rows = append(vm.Rows, row)
	}
	templates.Render(w, r, "admin/activity", vm)
}

// describe renders event details as "k=v" pairs in key order.
func describe(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + details[k]
	}
	return strings.Join(parts, " ")
}
