//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid. Errors
// are ignored: the group may already be gone.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
