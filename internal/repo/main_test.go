package repo_test

import (
	"os"
	"testing"

	"github.com/pkordes/travel-planner/testutil"
)

// TestMain applies all pending migrations once for the package so
// individual tests never need to think about schema state.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		testutil.MustMigrate(dsn)
	}
	os.Exit(m.Run())
}
