package events

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentsync"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
)

func TestStream_DeliversChanges(t *testing.T) {
	hub := contentsync.NewHub()
	hub.Notify(contentsync.Loaded{Doc: models.DefaultContent()})

	srv := httptest.NewServer(Routes(NewHandler(hub, zap.NewNop())))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/", nil)
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	// The retry line is written after the subscription exists.
	for lines.Scan() && !strings.HasPrefix(lines.Text(), "retry:") {
	}

	doc := models.DefaultContent()
	doc.Hero.TitleEn = "Changed"
	if !hub.Notify(contentsync.Loaded{Doc: doc, Source: contentsync.SourceSave, Revision: "rev-9"}) {
		t.Fatal("Notify() did not publish")
	}

	var sawEvent, sawData bool
	for lines.Scan() {
		line := lines.Text()
		if line == "event: content" {
			sawEvent = true
		}
		if strings.HasPrefix(line, "data: ") {
			sawData = strings.Contains(line, `"revision":"rev-9"`) && strings.Contains(line, `"source":"save"`)
			break
		}
	}
	if !sawEvent || !sawData {
		t.Errorf("event = %v, data = %v", sawEvent, sawData)
	}
}

func TestStream_Heartbeat(t *testing.T) {
	h := NewHandler(contentsync.NewHub(), zap.NewNop())
	h.SetHeartbeat(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	h.Stream(rec, req)

	if !strings.Contains(rec.Body.String(), ": keep-alive") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
