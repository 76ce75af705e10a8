//go:build windows

package process

import (
	"os/exec"
	"time"

	"golang.org/x/sys/windows"
)

const (
	terminateGrace = 1 * time.Second
	terminatePoll  = 25 * time.Millisecond
)

// applyPlatformProcAttr puts cmd in a new process group so a console-control
// event can be targeted at the child alone (see interrupt_windows.go).
func applyPlatformProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &windows.SysProcAttr{CreationFlags: windows.CREATE_NEW_PROCESS_GROUP}
}

// terminateProcessGroup has no graceful console-event equivalent for a
// surprise teardown path, so it waits briefly for the child's own
// gdb-exit-triggered shutdown, then forcibly kills it.
func terminateProcessGroup(cmd *exec.Cmd) error {
	if waitForExit(cmd, terminateGrace, terminatePoll) {
		return nil
	}
	return cmd.Process.Kill()
}

func waitForExit(cmd *exec.Cmd, timeout, pollEvery time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		proc, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(cmd.Process.Pid))
		if err != nil {
			return true
		}
		windows.CloseHandle(proc)
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollEvery)
	}
}
