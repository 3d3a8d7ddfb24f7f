//go:build windows

// ABOUTME: Pause and resume stubs for Windows
// ABOUTME: Windows has no job-control signals, so pausing reports an error

package exec

import (
	"errors"
	"os"
)

var errPauseUnsupported = errors.New("pause is not supported on windows")

func suspend(*os.Process) error { return errPauseUnsupported }
func resume(*os.Process) error  { return nil }
