package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/stratascout/internal/app/features/errors"
	"github.com/dalemusser/stratascout/internal/app/store/audit"
	"github.com/dalemusser/stratascout/internal/app/system/appstate"
	"github.com/dalemusser/stratascout/internal/app/system/auth"
	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"github.com/dalemusser/stratascout/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// memContent is a password-guarded document in memory.
type memContent struct {
	doc      models.ContentDocument
	fail     contentsync.Reason // forces Save to fail when set
	degraded bool               // serves doc as defaults standing in for unreadable content
	saves    int
}

func (m *memContent) Current(ctx context.Context) contentsync.Loaded {
	if m.degraded {
		return contentsync.Loaded{Doc: m.doc.Clone(), Source: contentsync.SourceDefaults, Degraded: true}
	}
	return contentsync.Loaded{Doc: m.doc.Clone(), Source: contentsync.SourceMongo}
}

func (m *memContent) Save(ctx context.Context, doc *models.ContentDocument, credential string) contentsync.SaveResult {
	if credential != testutil.AdminPassword {
		return contentsync.SaveResult{Reason: contentsync.ReasonUnauthorized, Message: "Wrong password"}
	}
	if m.fail != contentsync.ReasonNone {
		return contentsync.SaveResult{Reason: m.fail, Message: "disk unavailable"}
	}
	m.saves++
	m.doc = doc.Clone()
	return contentsync.SaveResult{OK: true}
}

func (m *memContent) Verify(ctx context.Context, credential string) contentsync.SaveResult {
	if credential != testutil.AdminPassword {
		return contentsync.SaveResult{Reason: contentsync.ReasonUnauthorized, Message: "Wrong password"}
	}
	return contentsync.SaveResult{OK: true}
}

type fakeSessions struct {
	signedIn string
	out      bool
}

func (f *fakeSessions) SignIn(w http.ResponseWriter, r *http.Request, credential string) (string, error) {
	f.signedIn = credential
	return "token-0123456789", nil
}

func (f *fakeSessions) SignOut(w http.ResponseWriter, r *http.Request) { f.out = true }

type fakeLimiter struct {
	blocked  bool
	failures int
	cleared  int
}

func (f *fakeLimiter) CheckAllowed(ctx context.Context, key string) (bool, int, *time.Time) {
	if f.blocked {
		until := time.Now().Add(time.Minute)
		return false, 0, &until
	}
	return true, 5 - f.failures, nil
}

func (f *fakeLimiter) RecordFailure(ctx context.Context, key string) (bool, *time.Time) {
	f.failures++
	return false, nil
}

func (f *fakeLimiter) ClearOnSuccess(ctx context.Context, key string) error {
	f.cleared++
	return nil
}

type memInbox struct {
	msgs    []models.ContactMessage
	deleted []primitive.ObjectID
}

func (m *memInbox) List(ctx context.Context, unreadOnly bool, limit, page int64) ([]models.ContactMessage, error) {
	return m.msgs, nil
}

func (m *memInbox) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	for _, msg := range m.msgs {
		if !msg.Read {
			n++
		}
	}
	return n, nil
}

func (m *memInbox) MarkRead(ctx context.Context, id primitive.ObjectID, read bool) error {
	for i := range m.msgs {
		if m.msgs[i].ID == id {
			m.msgs[i].Read = read
		}
	}
	return nil
}

func (m *memInbox) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type staticActivity []audit.Event

func (s staticActivity) Recent(ctx context.Context, category string, limit int64) ([]audit.Event, error) {
	return s, nil
}

type fixture struct {
	content  *memContent
	sessions *fakeSessions
	limiter  *fakeLimiter
	inbox    *memInbox
	router   http.Handler
}

// requireAdmin stands in for auth.SessionManager.RequireAdmin.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentAdmin(r); !ok {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testutil.MustBootTemplates(t)

	doc := models.DefaultContent()
	doc.Achievements = []models.Achievement{
		{ID: 1, Year: "2020", Icon: "fas fa-trophy", TitleAr: "أول", TitleEn: "First"},
		{ID: 5, Year: "2022", Icon: "fas fa-medal", TitleAr: "خامس", TitleEn: "Fifth"},
	}

	f := &fixture{
		content:  &memContent{doc: doc},
		sessions: &fakeSessions{},
		limiter:  &fakeLimiter{},
		inbox:    &memInbox{},
	}
	logger := zap.NewNop()
	h := NewHandler(Deps{
		Content:  f.content,
		Sessions: f.sessions,
		Limiter:  f.limiter,
		Inbox:    f.inbox,
		Activity: staticActivity{{CreatedAt: time.Now(), Category: audit.CategoryContent, EventType: audit.EventItemAdded, Actor: "token-01", Success: true, Details: map[string]string{"list": "videos", "id": "3"}}},
	}, errorsfeature.NewErrorLogger(logger), logger)
	h.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	f.router = appstate.Middleware(Routes(h, requireAdmin))
	return f
}

func (f *fixture) do(req *http.Request) *testutil.ResponseRecorder {
	rec := testutil.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture(t)

	req := testutil.WithCSRFToken(testutil.NewFormRequest("/login", url.Values{"password": {"guess"}}))
	rec := f.do(req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, i18n.WrongPassword.Ar)
	if f.limiter.failures != 1 {
		t.Errorf("failures = %d, want 1", f.limiter.failures)
	}
	if f.sessions.signedIn != "" {
		t.Error("wrong password must not sign in")
	}
}

func TestLogin_Success(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"password": {testutil.AdminPassword}, "return": {"/admin/videos"}}
	rec := f.do(testutil.WithCSRFToken(testutil.NewFormRequest("/login", form)))

	rec.AssertRedirect(t, "/admin/videos?flash=logged-in")
	if f.sessions.signedIn != testutil.AdminPassword {
		t.Errorf("SignIn credential = %q", f.sessions.signedIn)
	}
	if f.limiter.cleared != 1 {
		t.Error("successful login should clear the failure counter")
	}
}

func TestLogin_RateLimited(t *testing.T) {
	f := newFixture(t)
	f.limiter.blocked = true

	form := url.Values{"password": {testutil.AdminPassword}}
	rec := f.do(testutil.WithCSRFToken(testutil.NewFormRequest("/login", form)))

	rec.AssertStatus(t, http.StatusTooManyRequests)
	if f.sessions.signedIn != "" {
		t.Error("locked-out client must not sign in")
	}
}

func TestSafeReturn(t *testing.T) {
	tests := map[string]string{
		"":                "/admin/hero",
		"/admin/videos":   "/admin/videos",
		"/admin/login":    "/admin/hero",
		"https://evil.io": "/admin/hero",
		"/":               "/admin/hero",
	}
	for in, want := range tests {
		if got := safeReturn(in); got != want {
			t.Errorf("safeReturn(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewAdminFormRequest("/logout", nil))

	rec.AssertRedirect(t, "/?flash=logged-out")
	if !f.sessions.out {
		t.Error("SignOut not called")
	}
}

func TestGuard_RedirectsAnonymous(t *testing.T) {
	f := newFixture(t)
	rec := f.do(httptest.NewRequest(http.MethodGet, "/hero", nil))
	rec.AssertRedirect(t, "/admin/login")
}

func TestShowSection(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/hero"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `action="/admin/section/hero"`)
	rec.AssertContains(t, `name="titleAr"`)
	rec.AssertContains(t, f.content.doc.Hero.TitleAr)
}

func TestUnknownTab(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/bogus"))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestSaveSection(t *testing.T) {
	f := newFixture(t)

	form := url.Values{
		"titleAr":    {"عنوان جديد"},
		"titleEn":    {"New <b>title</b>"},
		"subtitleAr": {"فرعي"},
	}
	rec := f.do(testutil.NewAdminFormRequest("/section/hero", form))

	rec.AssertRedirect(t, "/admin/hero?flash=saved")
	hero := f.content.doc.Hero
	if hero.TitleAr != "عنوان جديد" || hero.TitleEn != "New title" {
		t.Errorf("hero = %+v", hero)
	}
	if hero.SubtitleEn != "" {
		t.Errorf("unsent fields are cleared, SubtitleEn = %q", hero.SubtitleEn)
	}
}

func TestSaveSection_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.content.fail = contentsync.ReasonStorageUnavailable
	before := f.content.doc.Hero.TitleEn

	rec := f.do(testutil.NewAdminFormRequest("/section/hero", url.Values{"titleEn": {"Lost"}}))

	rec.AssertStatus(t, http.StatusServiceUnavailable)
	rec.AssertContains(t, i18n.StorageUnavailable.Ar)
	rec.AssertContains(t, `value="Lost"`)
	if f.content.doc.Hero.TitleEn != before {
		t.Error("failed save changed the document")
	}
}

func TestSave_RefusedOnDegradedSnapshot(t *testing.T) {
	f := newFixture(t)
	f.content.degraded = true

	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/hero"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, i18n.ContentDegraded.Ar)

	rec = f.do(testutil.NewAdminFormRequest("/section/hero", url.Values{"titleEn": {"Over defaults"}}))
	rec.AssertStatus(t, http.StatusServiceUnavailable)
	rec.AssertContains(t, i18n.StorageUnavailable.Ar)
	rec.AssertContains(t, `value="Over defaults"`)

	form := url.Values{"action": {"save"}, "titleAr": {"جديد"}}
	rec = f.do(testutil.NewAdminFormRequest("/achievements", form))
	rec.AssertStatus(t, http.StatusServiceUnavailable)

	f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/achievements/5/delete"))
	rec = f.do(testutil.NewAdminFormRequest("/achievements/5/delete", url.Values{"action": {"confirm"}}))
	rec.AssertRedirect(t, "/admin/achievements?flash=storage-unavailable")

	if f.content.saves != 0 {
		t.Errorf("saves = %d, want none while the snapshot is degraded", f.content.saves)
	}

	// Once the store recovers, edits go through again.
	f.content.degraded = false
	rec = f.do(testutil.NewAdminFormRequest("/section/hero", url.Values{"titleEn": {"Recovered"}}))
	rec.AssertRedirect(t, "/admin/hero?flash=saved")
}

func TestShowList(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/achievements"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "/admin/achievements/5/edit")
	rec.AssertContains(t, "/admin/achievements/new")
}

func TestCreateItem_NextID(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"action": {"save"}, "titleAr": {"جديد"}, "icon": {"fas fa-star"}}
	rec := f.do(testutil.NewAdminFormRequest("/achievements", form))

	rec.AssertRedirect(t, "/admin/achievements?flash=item-added")
	items := f.content.doc.Achievements
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	got := items[2]
	if got.ID != 6 {
		t.Errorf("new ID = %d, want 6", got.ID)
	}
	if got.TitleEn != "جديد" {
		t.Errorf("TitleEn fallback = %q", got.TitleEn)
	}
	if got.Year != "2026" {
		t.Errorf("Year fallback = %q", got.Year)
	}
}

func TestCreateItem_RequiresArabicTitle(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"action": {"save"}, "titleEn": {"English only"}}
	rec := f.do(testutil.NewAdminFormRequest("/achievements", form))

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, i18n.ArabicTitleRequired.Ar)
	rec.AssertContains(t, `value="English only"`)
	if f.content.saves != 0 {
		t.Error("invalid item must not be saved")
	}
}

func TestCreateItem_UnknownIconDropped(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"action": {"save"}, "titleAr": {"فيديو"}, "url": {"https://youtu.be/abcdefghijk"}, "icon": {"evil\"><script>"}}
	f.do(testutil.NewAdminFormRequest("/achievements", form))

	if n := len(f.content.doc.Achievements); n != 3 {
		t.Fatalf("len = %d", n)
	}
	if icon := f.content.doc.Achievements[2].Icon; icon != models.DefaultAchievementIcon {
		t.Errorf("Icon = %q, want the list default", icon)
	}
}

func TestNewItemForm(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/participation/new"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `action="/admin/participation"`)
	rec.AssertContains(t, `name="statsAr"`)
	rec.AssertContains(t, `<select id="f-icon" name="icon">`)
}

func TestEditItem(t *testing.T) {
	f := newFixture(t)

	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/achievements/5/edit"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `action="/admin/achievements/5"`)
	rec.AssertContains(t, `value="Fifth"`)

	rec = f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/achievements/99/edit"))
	rec.AssertRedirect(t, "/admin/achievements?flash=item-not-found")
}

func TestUpdateItem(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"action": {"save"}, "titleAr": {"معدل"}, "titleEn": {"Edited"}, "year": {"2023"}, "icon": {"fas fa-medal"}}
	rec := f.do(testutil.NewAdminFormRequest("/achievements/1", form))

	rec.AssertRedirect(t, "/admin/achievements?flash=item-edited")
	got := f.content.doc.Achievements[0]
	if got.ID != 1 || got.TitleEn != "Edited" || got.Year != "2023" {
		t.Errorf("item = %+v", got)
	}
}

func TestUpdateItem_Cancel(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"action": {"cancel"}, "titleAr": {"تجاهل"}}
	rec := f.do(testutil.NewAdminFormRequest("/achievements/1", form))

	rec.AssertRedirect(t, "/admin/achievements")
	if f.content.saves != 0 || f.content.doc.Achievements[0].TitleAr != "أول" {
		t.Error("cancel must leave the item unchanged")
	}
}

func TestUpdateItem_Missing(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"action": {"save"}, "titleAr": {"شبح"}}
	rec := f.do(testutil.NewAdminFormRequest("/achievements/42", form))

	rec.AssertRedirect(t, "/admin/achievements?flash=item-not-found")
	if len(f.content.doc.Achievements) != 2 {
		t.Error("editing a missing id must not add an item")
	}
}

func TestDeleteItem(t *testing.T) {
	f := newFixture(t)

	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/achievements/5/delete"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `value="confirm"`)
	rec.AssertContains(t, "Fifth")

	rec = f.do(testutil.NewAdminFormRequest("/achievements/5/delete", url.Values{"action": {"cancel"}}))
	rec.AssertRedirect(t, "/admin/achievements")
	if len(f.content.doc.Achievements) != 2 {
		t.Fatal("cancel deleted the item")
	}

	rec = f.do(testutil.NewAdminFormRequest("/achievements/5/delete", url.Values{"action": {"confirm"}}))
	rec.AssertRedirect(t, "/admin/achievements?flash=item-deleted")
	if items := f.content.doc.Achievements; len(items) != 1 || items[0].ID != 1 {
		t.Errorf("items after delete = %+v", items)
	}

	// Deleting again is a no-op.
	saves := f.content.saves
	rec = f.do(testutil.NewAdminFormRequest("/achievements/5/delete", url.Values{"action": {"confirm"}}))
	rec.AssertRedirect(t, "/admin/achievements?flash=item-deleted")
	if f.content.saves != saves {
		t.Error("deleting a missing id should not save")
	}
}

func TestMessages(t *testing.T) {
	f := newFixture(t)
	id := primitive.NewObjectID()
	f.inbox.msgs = []models.ContactMessage{{
		ID: id, Name: "Sara", Email: "sara@example.com",
		Message: "Hello\n\n<script>x</script>", Lang: "en", CreatedAt: time.Now(),
	}}

	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/messages"))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "sara@example.com")
	rec.AssertContains(t, `<span class="badge">1</span>`)
	if strings.Contains(rec.Body.String(), "<script>x</script>") {
		t.Error("message body must be escaped")
	}

	rec = f.do(testutil.NewAdminFormRequest("/messages/"+id.Hex()+"/read", url.Values{"read": {"true"}}))
	rec.AssertRedirect(t, "/admin/messages")
	if !f.inbox.msgs[0].Read {
		t.Error("message not marked read")
	}

	rec = f.do(testutil.NewAdminFormRequest("/messages/"+id.Hex()+"/delete", nil))
	rec.AssertRedirect(t, "/admin/messages?flash=message-deleted")
	if len(f.inbox.deleted) != 1 || f.inbox.deleted[0] != id {
		t.Errorf("deleted = %v", f.inbox.deleted)
	}

	rec = f.do(testutil.NewAdminFormRequest("/messages/not-an-id/delete", nil))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestActivity(t *testing.T) {
	f := newFixture(t)
	rec := f.do(testutil.NewAdminRequestWithCSRF(http.MethodGet, "/activity"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, audit.EventItemAdded)
	rec.AssertContains(t, "id=3 list=videos")
}

func TestDescribe(t *testing.T) {
	if got := describe(map[string]string{"b": "2", "a": "1"}); got != "a=1 b=2" {
		t.Errorf("describe() = %q", got)
	}
	if got := describe(nil); got != "" {
		t.Errorf("describe(nil) = %q", got)
	}
}
