// Package testing is imported for side effects by test packages: it flips
// test mode and defaults the store to memory before any init reads them.
package testing

import (
	"os"
	stdtesting "testing"

	"github.com/taskboard/taskboard/internal/app"
)

func init() {
	_ = os.Setenv(app.TestModeEnv, "1")
	if os.Getenv("STORE_DRIVER") == "" {
		_ = os.Setenv("STORE_DRIVER", app.StoreDriverMemory)
	}
}

// TestMain can be assigned by packages that want the same setup explicitly.
func TestMain(m *stdtesting.M) {
	os.Exit(m.Run())
}
