package console

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

var (
	forceState int32 // 0 = auto, 1 = force on, -1 = force off
	enabledMu  sync.Mutex
)

// Enabled reports whether console output should carry ANSI styling: stdout
// is a terminal, unless overridden by SetEnabled.
func Enabled() bool {
	enabledMu.Lock()
	defer enabledMu.Unlock()
	switch forceState {
	case 1:
		return true
	case -1:
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}

// SetEnabled overrides the terminal auto-detection, e.g. for a --color=always
// CLI flag or for tests.
func SetEnabled(on bool) {
	enabledMu.Lock()
	defer enabledMu.Unlock()
	if on {
		forceState = 1
	} else {
		forceState = -1
	}
}

// ResetAutoDetect restores terminal auto-detection after a SetEnabled call.
func ResetAutoDetect() {
	enabledMu.Lock()
	defer enabledMu.Unlock()
	forceState = 0
}
