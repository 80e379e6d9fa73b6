//go:build !windows

package procrun

import "os/exec"

func setCmdLine(cmd *exec.Cmd, argv []string) {}
