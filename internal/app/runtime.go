package app

import (
	"os"
	"sync"
)

// TestModeEnv makes cmd/taskboard return before opening stores or sockets
// when set to "1".
const TestModeEnv = "TASKBOARD_TEST_MODE"

var testMode = sync.OnceValue(func() bool {
	return os.Getenv(TestModeEnv) == "1"
})

// InTestMode reports whether the process runs under go test. The value is
// read once.
func InTestMode() bool {
	return testMode()
}
