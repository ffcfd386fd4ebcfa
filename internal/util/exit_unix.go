//go:build unix

package util

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// exitCode mirrors the usual convention of reporting a process killed by a
// signal as the negated signal number.
func exitCode(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return state.ExitCode()
}

// DescribeExitCode returns a short human description of an exit code.
func DescribeExitCode(code int) string {
	if code < 0 {
		if name := unix.SignalName(syscall.Signal(-code)); name != "" {
			return "killed by " + name
		}
		return "killed by signal"
	}
	return "exit status"
}
