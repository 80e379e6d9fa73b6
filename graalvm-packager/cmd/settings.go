package cmd

import (
	"os"
	"path/filepath"
	"time"

	"graalvm-tools/go/pkg/bootstrap"
	"graalvm-tools/go/pkg/config"
	"graalvm-tools/go/pkg/msvc"
	"graalvm-tools/go/pkg/nativeimage"
	"graalvm-tools/go/pkg/platform"
	"graalvm-tools/go/pkg/procrun"
)

// Gradle's version for projects that never set one.
const unspecifiedVersion = "unspecified"

var defaultConfigFiles = []string{"graalvm.yaml", "graalvm.yml", "graalvm.toml"}

var (
	configPath     string
	compilerHome   string
	mainClassName  string
	executableName string
	extraArgs      []string
	classpath      []string
	projectName    string
	projectVersion string
	buildDir       string
	cacheDir       string
	timeout        time.Duration
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a graalvm.yaml or graalvm.toml settings file (default: ./graalvm.{yaml,yml,toml} if present).")
	flags.StringVar(&compilerHome, "graalvm-home", "", "GraalVM installation directory (default: $GRAALVM_HOME, then $JAVA_HOME).")
	flags.StringVar(&mainClassName, "main-class", "", "Fully qualified name of the application's main class.")
	flags.StringVar(&executableName, "name", "", "Executable name (default: <project>-<version>-<classifier>).")
	flags.StringArrayVar(&extraArgs, "arg", []string{}, "Extra native-image argument, passed verbatim. Repeatable; order is kept.")
	flags.StringArrayVar(&classpath, "classpath", []string{}, "Classpath entry or doublestar pattern, e.g. build/libs/*-all.jar. Repeatable.")
	flags.StringVar(&projectName, "project-name", "", "Project name used in the default executable name (default: current directory name).")
	flags.StringVar(&projectVersion, "project-version", "", "Project version used in the default executable name.")
	flags.StringVar(&buildDir, "build-dir", "", "Build output root; the executable goes to <build-dir>/graalvm (default: build).")
	flags.StringVar(&cacheDir, "cache-dir", "", "Cache for downloaded helper tools (default: ~/.graalvm/cache).")
	flags.DurationVar(&timeout, "timeout", 0, "Abort any child process running longer than this (default: no limit).")
}

// resolveSettings layers flags over the settings file over the environment
// over defaults.
func resolveSettings() (config.Settings, error) {
	var s config.Settings

	path := configPath
	if path == "" {
		for _, candidate := range defaultConfigFiles {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Settings{}, err
		}
		log.Debug("config", "load", "success", "Loaded settings file", "path", path)
		s = loaded
	}

	overlayFlags(&s)

	if err := s.ApplyEnv(os.Getenv); err != nil {
		return config.Settings{}, err
	}
	if err := s.ApplyDefaults(); err != nil {
		return config.Settings{}, err
	}
	if s.Project.Name == "" {
		if wd, err := os.Getwd(); err == nil {
			s.Project.Name = filepath.Base(wd)
		}
	}
	if s.Project.Version == "" {
		s.Project.Version = unspecifiedVersion
	}
	return s, nil
}

func overlayFlags(s *config.Settings) {
	if compilerHome != "" {
		s.GraalVM.Home = compilerHome
	}
	if mainClassName != "" {
		s.GraalVM.MainClassName = mainClassName
	}
	if executableName != "" {
		s.GraalVM.ExecutableName = executableName
	}
	if len(extraArgs) > 0 {
		s.GraalVM.Arguments = append([]string(nil), extraArgs...)
	}
	if len(classpath) > 0 {
		s.Classpath = append([]string(nil), classpath...)
	}
	if projectName != "" {
		s.Project.Name = projectName
	}
	if projectVersion != "" {
		s.Project.Version = projectVersion
	}
	if buildDir != "" {
		s.BuildDir = buildDir
	}
	if cacheDir != "" {
		s.CacheDir = cacheDir
	}
	if timeout > 0 {
		s.Timeout = timeout
	}
}

// newInvoker wires the compiler steps for the running host.
func newInvoker(s config.Settings) *nativeimage.Invoker {
	host := platform.Detect()
	runner := procrun.New(host, log)
	runner.Timeout = s.Timeout
	return &nativeimage.Invoker{
		Platform: host,
		Runner:   runner,
		Toolchain: &msvc.Resolver{
			Runner:  runner,
			Fetcher: bootstrap.New(log),
			Log:     log,
		},
		CacheDir: s.CacheDir,
		Log:      log,
	}
}
