//go:build !unix

package devrun

import (
	"os"
	"os/exec"
)

func setProcessGroup(*exec.Cmd) {}

func signalProcess(cmd *exec.Cmd, _ os.Signal) {
	if cmd.Process != nil {
		_ = cmd.Process.Kill()
	}
}
