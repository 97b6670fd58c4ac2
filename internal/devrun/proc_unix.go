//go:build unix

package devrun

import (
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup puts the child in its own group so signals reach the
// programs that "go run" spawns.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func signalProcess(cmd *exec.Cmd, sig os.Signal) {
	if cmd.Process == nil {
		return
	}
	if s, ok := sig.(syscall.Signal); ok {
		if err := syscall.Kill(-cmd.Process.Pid, s); err == nil {
			return
		}
	}
	_ = cmd.Process.Signal(sig)
}
