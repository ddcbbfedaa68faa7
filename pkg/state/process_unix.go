//go:build unix

package state

import "syscall"

// processExists sends signal 0, which checks for the process without
// signalling it. EPERM means it exists under another user.
func processExists(pid int) bool {
	err := syscall.Kill(pid, 0)
	return err == nil || err == syscall.EPERM
}
