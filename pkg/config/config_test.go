package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlConfig = `
project:
  name: demo
  version: "1.0"
graalvm:
  compilerHome: /opt/graalvm
  mainClassName: com.example.Main
  arguments:
    - --no-fallback
    - -H:+ReportExceptionStackTraces
classpath:
  - build/libs/demo-all.jar
timeout: 30m
dist:
  format: tar.zst
`

const tomlConfig = `
buildDir = "out"

[project]
name = "demo"
version = "2.0"

[graalvm]
mainClassName = "com.example.Main"
executableName = "demo-cli"
arguments = ["--static"]
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	s, err := Load(writeConfig(t, "graalvm.yaml", yamlConfig))
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Project.Name)
	assert.Equal(t, "1.0", s.Project.Version)
	assert.Equal(t, "/opt/graalvm", s.GraalVM.Home)
	assert.Equal(t, "com.example.Main", s.GraalVM.MainClassName)
	assert.Equal(t, []string{"--no-fallback", "-H:+ReportExceptionStackTraces"}, s.GraalVM.Arguments)
	assert.Equal(t, []string{"build/libs/demo-all.jar"}, s.Classpath)
	assert.Equal(t, 30*time.Minute, s.Timeout)
	assert.Equal(t, "tar.zst", s.DistFormat)
}

func TestLoadTOML(t *testing.T) {
	s, err := Load(writeConfig(t, "graalvm.toml", tomlConfig))
	require.NoError(t, err)

	assert.Equal(t, "2.0", s.Project.Version)
	assert.Equal(t, "demo-cli", s.GraalVM.ExecutableName)
	assert.Equal(t, []string{"--static"}, s.GraalVM.Arguments)
	assert.Equal(t, "out", s.BuildDir)
	assert.Equal(t, filepath.Join("out", "graalvm"), s.OutputDir())
	assert.Equal(t, filepath.Join("out", "dist"), s.DistDir())
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeConfig(t, "graalvm.yml", "graalvm:\n  mainClass: x\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "graalvm.toml", "[graalvm]\nmainClass = \"x\"\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "graalvm.json", "{}"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "graalvm.yaml", "timeout: soon\n"))
	assert.Error(t, err)
}

func TestLoadEmptyYAML(t *testing.T) {
	s, err := Load(writeConfig(t, "graalvm.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		JavaHomeEnvVar:  "/usr/lib/jvm/graalvm",
		ExtraArgsEnvVar: `--initialize-at-build-time -H:Class="a b"`,
	}
	s := Settings{}
	s.GraalVM.Arguments = []string{"--no-fallback"}
	require.NoError(t, s.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "/usr/lib/jvm/graalvm", s.GraalVM.Home)
	assert.Equal(t, []string{"--no-fallback", "--initialize-at-build-time", "-H:Class=a b"}, s.GraalVM.Arguments)

	env[GraalVMHomeEnvVar] = "/opt/graalvm"
	s = Settings{}
	require.NoError(t, s.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "/opt/graalvm", s.GraalVM.Home, "GRAALVM_HOME wins over JAVA_HOME")

	s = Settings{}
	s.GraalVM.Home = "/explicit"
	require.NoError(t, s.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "/explicit", s.GraalVM.Home)

	s = Settings{}
	err := s.ApplyEnv(func(k string) string {
		if k == ExtraArgsEnvVar {
			return `"unterminated`
		}
		return ""
	})
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	s := Settings{}
	require.NoError(t, s.ApplyDefaults())
	assert.Equal(t, DefaultBuildDir, s.BuildDir)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".graalvm", "cache"), s.CacheDir)

	s = Settings{BuildDir: "target", CacheDir: "/tmp/c"}
	require.NoError(t, s.ApplyDefaults())
	assert.Equal(t, "target", s.BuildDir)
	assert.Equal(t, "/tmp/c", s.CacheDir)
}

func TestExpandClasspath(t *testing.T) {
	dir := t.TempDir()
	libs := filepath.Join(dir, "build", "libs")
	require.NoError(t, os.MkdirAll(filepath.Join(libs, "nested"), 0755))
	for _, name := range []string{"b-all.jar", "a-all.jar", "plain.jar", "nested/c-all.jar"} {
		require.NoError(t, os.WriteFile(filepath.Join(libs, name), nil, 0644))
	}

	got, err := ExpandClasspath([]string{filepath.Join(libs, "*-all.jar"), "literal.jar"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(libs, "a-all.jar"), filepath.Join(libs, "b-all.jar"), "literal.jar"}, got)

	got, err = ExpandClasspath([]string{filepath.Join(libs, "**", "*-all.jar")})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = ExpandClasspath([]string{filepath.Join(libs, "*.war")})
	assert.Error(t, err)
}
