//go:build !windows

package decoder

import (
	"os/exec"
	"syscall"
)

// configureSysProc puts the decoder in its own process group so that
// wrapper scripts and forked helpers can be killed together with it.
func configureSysProc(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate kills the decoder's process group. Killing an already-exited
// process is a no-op.
func terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
		_ = cmd.Process.Kill()
	}
}
