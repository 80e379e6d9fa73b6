// Package config resolves the build settings from an optional graalvm.yaml
// or graalvm.toml file, the environment and built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/shlex"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"graalvm-tools/go/pkg/nativeimage"
)

// Environment variable names
const (
	GraalVMHomeEnvVar = "GRAALVM_HOME"
	JavaHomeEnvVar    = "JAVA_HOME"
	ExtraArgsEnvVar   = "GRAALVM_NATIVE_IMAGE_ARGS"
)

const (
	DefaultBuildDir = "build"
	outputDirName   = "graalvm"
	distDirName     = "dist"
)

type projectBlock struct {
	Name    string `yaml:"name" toml:"name"`
	Version string `yaml:"version" toml:"version"`
}

type graalvmBlock struct {
	CompilerHome   string   `yaml:"compilerHome" toml:"compilerHome"`
	MainClassName  string   `yaml:"mainClassName" toml:"mainClassName"`
	ExecutableName string   `yaml:"executableName" toml:"executableName"`
	Arguments      []string `yaml:"arguments" toml:"arguments"`
}

type distBlock struct {
	Format string `yaml:"format" toml:"format"`
}

type fileSchema struct {
	Project   projectBlock `yaml:"project" toml:"project"`
	GraalVM   graalvmBlock `yaml:"graalvm" toml:"graalvm"`
	Classpath []string     `yaml:"classpath" toml:"classpath"`
	BuildDir  string       `yaml:"buildDir" toml:"buildDir"`
	CacheDir  string       `yaml:"cacheDir" toml:"cacheDir"`
	Timeout   string       `yaml:"timeout" toml:"timeout"`
	Dist      distBlock    `yaml:"dist" toml:"dist"`
}

// Settings is everything one build invocation needs. It is passed by value
// into each step; nothing here is process-global.
type Settings struct {
	Project   nativeimage.Project
	GraalVM   nativeimage.Config
	Classpath []string
	BuildDir  string
	CacheDir  string
	// Timeout bounds each child process; zero means none.
	Timeout    time.Duration
	DistFormat string
}

// Load reads a settings file. The format follows the extension: .yaml/.yml
// or .toml.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}

	var raw fileSchema
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return Settings{}, fmt.Errorf("unsupported config file extension %q", ext)
	}

	s := Settings{
		Project: nativeimage.Project{Name: raw.Project.Name, Version: raw.Project.Version},
		GraalVM: nativeimage.Config{
			Home:           raw.GraalVM.CompilerHome,
			MainClassName:  raw.GraalVM.MainClassName,
			ExecutableName: raw.GraalVM.ExecutableName,
			Arguments:      raw.GraalVM.Arguments,
		},
		Classpath:  raw.Classpath,
		BuildDir:   raw.BuildDir,
		CacheDir:   raw.CacheDir,
		DistFormat: raw.Dist.Format,
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return Settings{}, fmt.Errorf("parsing timeout in %s: %w", path, err)
		}
		s.Timeout = d
	}
	return s, nil
}

// ApplyEnv fills the compiler home from GRAALVM_HOME or JAVA_HOME when unset
// and appends the shell-split GRAALVM_NATIVE_IMAGE_ARGS to the arguments.
func (s *Settings) ApplyEnv(getenv func(string) string) error {
	if s.GraalVM.Home == "" {
		s.GraalVM.Home = getenv(GraalVMHomeEnvVar)
	}
	if s.GraalVM.Home == "" {
		s.GraalVM.Home = getenv(JavaHomeEnvVar)
	}
	if extra := getenv(ExtraArgsEnvVar); strings.TrimSpace(extra) != "" {
		args, err := shlex.Split(extra)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", ExtraArgsEnvVar, err)
		}
		s.GraalVM.Arguments = append(s.GraalVM.Arguments, args...)
	}
	return nil
}

// ApplyDefaults sets the build and cache directories when unset.
func (s *Settings) ApplyDefaults() error {
	if s.BuildDir == "" {
		s.BuildDir = DefaultBuildDir
	}
	if s.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		s.CacheDir = filepath.Join(home, ".graalvm", "cache")
	}
	return nil
}

// OutputDir is where native-image writes the executable.
func (s Settings) OutputDir() string {
	return filepath.Join(s.BuildDir, outputDirName)
}

// DistDir is where packaged archives go.
func (s Settings) DistDir() string {
	return filepath.Join(s.BuildDir, distDirName)
}

// ExpandClasspath resolves doublestar patterns such as build/libs/*-all.jar
// into sorted file paths. Entries without glob syntax are kept as given.
func ExpandClasspath(entries []string) ([]string, error) {
	var out []string
	for _, entry := range entries {
		if !strings.ContainsAny(entry, "*?[{") {
			out = append(out, entry)
			continue
		}
		found, err := doublestar.FilepathGlob(entry)
		if err != nil {
			return nil, fmt.Errorf("expanding classpath pattern %q: %w", entry, err)
		}
		var matches []string
		for _, m := range found {
			if info, err := os.Stat(m); err == nil && !info.IsDir() {
				matches = append(matches, m)
			}
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("classpath pattern %q matched no files", entry)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}
