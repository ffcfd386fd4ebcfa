//go:build !unix

package util

import "os"

func exitCode(state *os.ProcessState) int {
	return state.ExitCode()
}

// DescribeExitCode returns a short human description of an exit code.
func DescribeExitCode(code int) string {
	if code < 0 {
		return "killed"
	}
	return "exit status"
}
