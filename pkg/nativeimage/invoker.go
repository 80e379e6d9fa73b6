// Package nativeimage drives the GraalVM native-image compiler: it checks
// the installation, assembles the compiler command line and runs it.
package nativeimage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	nierrors "graalvm-tools/go/pkg/errors"
	"graalvm-tools/go/pkg/logbowl"
	"graalvm-tools/go/pkg/msvc"
	"graalvm-tools/go/pkg/platform"
	"graalvm-tools/go/pkg/procrun"
)

// Config is the graalvm configuration block.
type Config struct {
	// Home is the GraalVM installation directory.
	Home           string
	MainClassName  string
	ExecutableName string
	// Arguments are passed to native-image verbatim, in order.
	Arguments []string
}

// Project identifies the artifact being built.
type Project struct {
	Name    string
	Version string
}

// EnvironmentResolver resolves the Windows compiler environment.
type EnvironmentResolver interface {
	Resolve(ctx context.Context, cacheDir string, arch platform.Arch) (msvc.Environment, error)
}

type Invoker struct {
	Platform  platform.Classifier
	Runner    procrun.Runner
	Toolchain EnvironmentResolver
	// CacheDir holds downloaded helper tools.
	CacheDir string
	// Stdout receives the echoed command line. Defaults to os.Stdout.
	Stdout io.Writer
	Log    logbowl.Logger
}

// ExecutableName is the configured name, or "{name}-{version}-{classifier}".
func ExecutableName(cfg Config, project Project, c platform.Classifier) string {
	if name := strings.TrimSpace(cfg.ExecutableName); name != "" {
		return name
	}
	return fmt.Sprintf("%s-%s-%s", project.Name, project.Version, c.Classifier)
}

// Invoke compiles the classpath into a native executable inside outputDir
// and returns the executable's path.
func (iv *Invoker) Invoke(ctx context.Context, cfg Config, project Project, classpath []string, outputDir string) (string, error) {
	if err := iv.checkCompiler(ctx, cfg); err != nil {
		return "", err
	}

	var env msvc.Environment
	if iv.Platform.IsWindows() {
		resolved, err := iv.Toolchain.Resolve(ctx, iv.CacheDir, iv.Platform.Arch)
		if err != nil {
			return "", err
		}
		env = resolved
	}

	absOut, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(absOut, 0755); err != nil {
		return "", err
	}

	absClasspath := make([]string, 0, len(classpath))
	for _, entry := range classpath {
		abs, err := filepath.Abs(entry)
		if err != nil {
			return "", err
		}
		absClasspath = append(absClasspath, abs)
	}

	exeName := ExecutableName(cfg, project, iv.Platform)
	cmd := BuildCommand(iv.Platform, cfg, env, absClasspath, absOut, exeName)

	out := iv.Stdout
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, cmd)
	iv.Log.Info("compiler", "build", "progress", "Running native-image", "name", exeName, "output", absOut)

	if err := iv.Runner.Stream(ctx, "", cmd); err != nil {
		iv.Log.Error("compiler", "build", "failure", "native-image failed", "error", err)
		return "", err
	}

	exePath := filepath.Join(absOut, exeName+iv.Platform.ExecutableSuffix())
	iv.Log.Info("compiler", "build", "success", "Native image built", "path", exePath)
	return exePath, nil
}

// checkCompiler verifies the installation and the main class before making
// sure the native-image component is installed.
func (iv *Invoker) checkCompiler(ctx context.Context, cfg Config) error {
	if cfg.Home == "" {
		return fmt.Errorf("%w: no GraalVM home configured", nierrors.ErrCompilerMissing)
	}
	if _, err := os.Stat(cfg.Home); err != nil {
		iv.Log.Error("compiler", "validate", "notfound", "GraalVM home does not exist", "path", cfg.Home)
		return fmt.Errorf("%w: %s", nierrors.ErrCompilerMissing, cfg.Home)
	}
	if strings.TrimSpace(cfg.MainClassName) == "" {
		iv.Log.Error("compiler", "validate", "invalid", "mainClassName is blank")
		return nierrors.ErrBlankMainClass
	}

	gu := filepath.Join(cfg.Home, "bin", "gu")
	iv.Log.Info("compiler", "install", "progress", "Ensuring native-image component", "gu", gu)
	if err := iv.Runner.Stream(ctx, "", fmt.Sprintf("\"%s\" install native-image", gu)); err != nil {
		return fmt.Errorf("installing native-image: %w", err)
	}
	return nil
}

// BuildCommand assembles the single shell command line that runs
// native-image, prefixed by the environment setup when env is set.
func BuildCommand(c platform.Classifier, cfg Config, env msvc.Environment, classpath []string, outputDir, exeName string) string {
	separator := ":"
	if c.IsWindows() {
		separator = ";"
	}
	compiler := filepath.Join(cfg.Home, "bin", "native-image")

	var b strings.Builder
	b.WriteString(env.Prefix())
	fmt.Fprintf(&b, "\"%s\" ", compiler)
	fmt.Fprintf(&b, "-cp \"%s\" ", strings.Join(classpath, separator))
	fmt.Fprintf(&b, "-H:Path=\"%s\" ", outputDir)
	fmt.Fprintf(&b, "-H:Name=%s ", exeName)
	for _, arg := range cfg.Arguments {
		if arg = strings.TrimSpace(arg); arg != "" {
			b.WriteString(arg)
			b.WriteString(" ")
		}
	}
	b.WriteString(strings.TrimSpace(cfg.MainClassName))
	return b.String()
}
