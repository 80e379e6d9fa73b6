//go:build linux || darwin || freebsd || netbsd || openbsd

package platform

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// hostNames reports uname's sysname and machine, falling back to the Go
// runtime names when uname fails.
func hostNames() (string, string) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return runtime.GOOS, runtime.GOARCH
	}
	sysname := unix.ByteSliceToString(u.Sysname[:])
	machine := unix.ByteSliceToString(u.Machine[:])
	if sysname == "" {
		sysname = runtime.GOOS
	}
	if machine == "" {
		machine = runtime.GOARCH
	}
	return sysname, machine
}
