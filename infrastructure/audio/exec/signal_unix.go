//go:build !windows

// ABOUTME: Pause and resume of the player process on Unix
// ABOUTME: The process is suspended with SIGSTOP and continued with SIGCONT

package exec

import (
	"os"
	"syscall"
)

func suspend(p *os.Process) error { return p.Signal(syscall.SIGSTOP) }
func resume(p *os.Process) error  { return p.Signal(syscall.SIGCONT) }
