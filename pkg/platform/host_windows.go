//go:build windows

package platform

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

func hostNames() (string, string) {
	info := windows.RtlGetVersion()
	return fmt.Sprintf("Windows %d", info.MajorVersion), runtime.GOARCH
}
