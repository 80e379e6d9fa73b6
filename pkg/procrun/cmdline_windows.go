//go:build windows

package procrun

import (
	"os/exec"
	"strings"
	"syscall"
)

// setCmdLine hands cmd.exe the command line verbatim. The default argument
// escaping would turn embedded quotes into \" which cmd.exe does not parse.
func setCmdLine(cmd *exec.Cmd, argv []string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: strings.Join(argv, " ")}
}
