package procrun

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	nierrors "graalvm-tools/go/pkg/errors"
	"graalvm-tools/go/pkg/logbowl"
	"graalvm-tools/go/pkg/platform"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellWrap(t *testing.T) {
	assert.Equal(t, []string{"/bin/bash", "-c", `"/opt/gu" install native-image`}, Posix.Wrap(`"/opt/gu" install native-image`))
	assert.Equal(t, []string{"cmd", "/c", `call "C:\gu" install native-image`}, WindowsCmd.Wrap(`"C:\gu" install native-image`))

	assert.Equal(t, WindowsCmd, ShellFor(platform.Windows))
	assert.Equal(t, Posix, ShellFor(platform.Linux))
	assert.Equal(t, Posix, ShellFor(platform.OSX))
	assert.Equal(t, Posix, ShellFor(platform.Unknown))
}

func bashRunner(t *testing.T, out *bytes.Buffer) *ShellRunner {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("bash-backed runner tests need a POSIX host")
	}
	if _, err := os.Stat("/bin/bash"); err != nil {
		t.Skip("/bin/bash not available")
	}
	return &ShellRunner{Shell: Posix, Stdout: out, Log: logbowl.Create("test-procrun")}
}

func TestStreamMergesStderr(t *testing.T) {
	var out bytes.Buffer
	r := bashRunner(t, &out)

	err := r.Stream(context.Background(), "", "echo to-stdout; echo to-stderr 1>&2")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "to-stdout")
	assert.Contains(t, out.String(), "to-stderr")
}

func TestStreamUsesWorkingDirectory(t *testing.T) {
	var out bytes.Buffer
	r := bashRunner(t, &out)
	dir := t.TempDir()

	require.NoError(t, r.Stream(context.Background(), dir, "touch marker"))
	assert.FileExists(t, filepath.Join(dir, "marker"))
}

func TestStreamFailsOnNonZeroExit(t *testing.T) {
	var out bytes.Buffer
	r := bashRunner(t, &out)

	err := r.Stream(context.Background(), "", "echo compiling; exit 3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nierrors.ErrProcessFailed))

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.Code)
	assert.Equal(t, "echo compiling; exit 3", exitErr.Command)
	assert.Contains(t, err.Error(), "echo compiling; exit 3")
	assert.Contains(t, out.String(), "compiling")
}

func TestCaptureReturnsCombinedOutput(t *testing.T) {
	var out bytes.Buffer
	r := bashRunner(t, &out)

	got, err := r.Capture(context.Background(), "", "echo 17.8.3; echo warn 1>&2")
	require.NoError(t, err)
	assert.Equal(t, "17.8.3\nwarn\n", got)
	assert.Empty(t, out.String(), "capture mode must not stream")
}

func TestCaptureChecksExitStatus(t *testing.T) {
	var out bytes.Buffer
	r := bashRunner(t, &out)

	got, err := r.Capture(context.Background(), "", "echo partial; exit 1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nierrors.ErrProcessFailed))
	assert.Equal(t, "partial\n", got)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "partial\n", exitErr.Output)
}

func TestTimeoutKillsChild(t *testing.T) {
	var out bytes.Buffer
	r := bashRunner(t, &out)
	r.Timeout = 200 * time.Millisecond

	start := time.Now()
	err := r.Stream(context.Background(), "", "sleep 10")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 8*time.Second)
}

func TestCancelledContext(t *testing.T) {
	var out bytes.Buffer
	r := bashRunner(t, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Capture(ctx, "", "echo never")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
