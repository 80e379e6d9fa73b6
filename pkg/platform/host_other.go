//go:build !(linux || darwin || freebsd || netbsd || openbsd || windows)

package platform

import "runtime"

func hostNames() (string, string) {
	return runtime.GOOS, runtime.GOARCH
}
