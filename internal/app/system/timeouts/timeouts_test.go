package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(Reset)

	Configure(Config{Remote: 3 * time.Second})
	if Remote() != 3*time.Second {
		t.Errorf("Remote() = %v, want 3s", Remote())
	}
	if Short() != DefaultShort {
		t.Errorf("Short() = %v, zero fields should keep the current value", Short())
	}

	Reset()
	if got := Current(); got != (Config{Ping: DefaultPing, Short: DefaultShort, Remote: DefaultRemote, Long: DefaultLong}) {
		t.Errorf("Current() after Reset() = %+v", got)
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), 10*time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	select {
	case <-ctx.Done():
		if ctx.Err() != context.DeadlineExceeded {
			t.Errorf("ctx.Err() = %v", ctx.Err())
		}
	case <-time.After(time.Second):
		t.Fatal("context did not time out")
	}
}
