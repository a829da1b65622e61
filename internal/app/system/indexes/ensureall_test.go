package indexes_test

import (
	"testing"

	"github.com/dalemusser/stratascout/internal/app/system/indexes"
	"github.com/dalemusser/stratascout/internal/testutil"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// SetupTestDB already ran EnsureAll once.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() second run error = %v", err)
	}

	existing := indexes.ListExisting(ctx, db.Collection("rate_limits"))
	if _, ok := existing["key:1"]; !ok {
		t.Errorf("rate_limits key index missing: %v", existing)
	}
}
