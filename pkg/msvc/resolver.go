// Package msvc locates an installed MSVC toolchain on Windows hosts and
// derives the vcvarsall.bat prefix native-image needs in front of it.
package msvc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"graalvm-tools/go/pkg/bootstrap"
	nierrors "graalvm-tools/go/pkg/errors"
	"graalvm-tools/go/pkg/logbowl"
	"graalvm-tools/go/pkg/platform"
	"graalvm-tools/go/pkg/procrun"
)

const (
	LocatorURL  = "https://github.com/microsoft/vswhere/releases/download/2.8.4/vswhere.exe"
	LocatorName = "vswhere.exe"
)

var setupScriptPath = []string{"VC", "Auxiliary", "Build", "vcvarsall.bat"}

// Environment is the resolved setup script and the architecture argument it
// is called with.
type Environment struct {
	SetupScript string
	Arch        string
}

// Prefix renders the command fragment that runs the setup script ahead of
// another command in the same cmd.exe invocation. Empty for the zero value.
func (e Environment) Prefix() string {
	if e.SetupScript == "" {
		return ""
	}
	return fmt.Sprintf("call \"%s\" %s && ", e.SetupScript, e.Arch)
}

// ArchToken maps a normalized arch to the vcvarsall.bat architecture argument.
func ArchToken(arch platform.Arch) string {
	switch arch {
	case platform.X86_64:
		return "x64"
	case platform.X86_32:
		return "x86"
	default:
		return ""
	}
}

// Fetcher materializes a downloadable file into a cache directory.
type Fetcher interface {
	EnsureLocal(ctx context.Context, cacheDir, name, sourceURL string, extractFromZip bool) (bootstrap.Artifact, error)
}

type Resolver struct {
	Runner  procrun.Runner
	Fetcher Fetcher
	// URL overrides LocatorURL when set.
	URL string
	Log logbowl.Logger
}

// Resolve downloads the locator if needed, asks it for the newest toolchain
// and checks that its vcvarsall.bat exists.
func (r *Resolver) Resolve(ctx context.Context, cacheDir string, arch platform.Arch) (Environment, error) {
	url := r.URL
	if url == "" {
		url = LocatorURL
	}
	locator, err := r.Fetcher.EnsureLocal(ctx, cacheDir, LocatorName, url, false)
	if err != nil {
		return Environment{}, fmt.Errorf("fetching %s: %w", LocatorName, err)
	}

	version, err := r.query(ctx, locator.Path, "installationVersion")
	if err != nil {
		return Environment{}, err
	}
	if version == "" {
		r.Log.Error("toolchain", "query", "notfound", "No MSVC installation found")
		return Environment{}, nierrors.ErrToolchainNotFound
	}

	root, err := r.query(ctx, locator.Path, "installationPath")
	if err != nil {
		return Environment{}, err
	}

	script := filepath.Join(append([]string{root}, setupScriptPath...)...)
	if _, err := os.Stat(script); err != nil {
		r.Log.Error("toolchain", "validate", "notfound", "Setup script not found", "path", script)
		return Environment{}, fmt.Errorf("%w: %s", nierrors.ErrSetupScriptMissing, script)
	}

	env := Environment{SetupScript: script, Arch: ArchToken(arch)}
	r.Log.Info("toolchain", "resolve", "success", "Resolved MSVC toolchain", "version", version, "script", script, "arch", env.Arch)
	return env, nil
}

func (r *Resolver) query(ctx context.Context, locator, property string) (string, error) {
	out, err := r.Runner.Capture(ctx, "", fmt.Sprintf("\"%s\" -latest -property %s", locator, property))
	if err != nil {
		return "", fmt.Errorf("querying %s: %w", property, err)
	}
	return strings.TrimSpace(out), nil
}
