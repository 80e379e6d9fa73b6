package procrun

import "graalvm-tools/go/pkg/platform"

// Shell is the command interpreter a command line is handed to.
type Shell int

const (
	// Posix runs commands through /bin/bash -c.
	Posix Shell = iota
	// WindowsCmd runs commands through cmd /c call.
	WindowsCmd
)

// ShellFor picks the shell dialect for a normalized OS.
func ShellFor(os platform.OS) Shell {
	if os == platform.Windows {
		return WindowsCmd
	}
	return Posix
}

// Wrap turns a single command line into the argument vector that runs it.
func (s Shell) Wrap(command string) []string {
	if s == WindowsCmd {
		return []string{"cmd", "/c", "call " + command}
	}
	return []string{"/bin/bash", "-c", command}
}

func (s Shell) String() string {
	if s == WindowsCmd {
		return "cmd"
	}
	return "bash"
}
