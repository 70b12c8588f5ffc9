package installer

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"awscli-update/internal/config"
	"awscli-update/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinux(t *testing.T, server *artifactServer, runner *recordingRunner) (Installer, string) {
	t.Helper()
	tempBase := t.TempDir()
	return New("linux", downloadsFor(server),
		WithHTTPClient(server.Client()), WithRunner(runner), WithTempDir(tempBase)), tempBase
}

func isExecutable(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return info.Mode().Perm()&0o111 == 0o111
}

func TestLinuxInstallRunsUpdate(t *testing.T) {
	server := newArtifactServer(t, http.StatusOK, awsBundle(t))
	runner := &recordingRunner{}
	runner.onRun = func(c call) {
		script := c.args[0]
		assert.True(t, isExecutable(t, script), "install script must be executable")
		dist := filepath.Join(filepath.Dir(script), "dist")
		assert.True(t, isExecutable(t, filepath.Join(dist, "aws")))
		assert.True(t, isExecutable(t, filepath.Join(dist, "aws_completer")))
	}
	inst, tempBase := newLinux(t, server, runner)

	err := inst.Install(context.Background(), version.New("2.20.0", true), config.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/awscli-exe-linux-x86_64-2.20.0.zip"}, server.paths)
	require.Len(t, runner.calls, 1)
	c := runner.calls[0]
	assert.False(t, c.quiet)
	require.Len(t, c.args, 2)
	assert.Equal(t, "install", filepath.Base(c.args[0]))
	assert.Equal(t, "--update", c.args[1])
	assert.NoFileExists(t, c.args[0])
	assertEmptyDir(t, tempBase)
}

func TestLinuxInstallWithSudoPrefixAndQuiet(t *testing.T) {
	server := newArtifactServer(t, http.StatusOK, awsBundle(t))
	runner := &recordingRunner{}
	inst, tempBase := newLinux(t, server, runner)

	prefix := filepath.Join(t.TempDir(), "opt")
	opts := config.Options{Sudo: true, Prefix: prefix, Quiet: true}
	require.NoError(t, inst.Install(context.Background(), version.New("2.20.0", true), opts))

	require.Len(t, runner.calls, 1)
	c := runner.calls[0]
	assert.True(t, c.quiet)
	require.Len(t, c.args, 7)
	assert.Equal(t, "sudo", c.args[0])
	assert.Equal(t, "install", filepath.Base(c.args[1]))
	assert.Equal(t, []string{
		"--update",
		"--install-dir", filepath.Join(prefix, "aws-cli"),
		"--bin-dir", filepath.Join(prefix, "bin"),
	}, c.args[2:])
	assertEmptyDir(t, tempBase)
}

func TestLinuxInstallDownloadFailureCleansUp(t *testing.T) {
	server := newArtifactServer(t, http.StatusNotFound, []byte("not found"))
	runner := &recordingRunner{}
	inst, tempBase := newLinux(t, server, runner)

	err := inst.Install(context.Background(), version.New("2.20.0", true), config.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
	assert.Empty(t, runner.calls)
	assertEmptyDir(t, tempBase)
}

func TestLinuxInstallCorruptArchiveCleansUp(t *testing.T) {
	server := newArtifactServer(t, http.StatusOK, []byte("this is not a zip"))
	runner := &recordingRunner{}
	inst, tempBase := newLinux(t, server, runner)

	err := inst.Install(context.Background(), version.New("2.20.0", true), config.Options{})
	require.Error(t, err)
	assert.Empty(t, runner.calls)
	assertEmptyDir(t, tempBase)
}

func TestLinuxInstallerFailurePropagatesAndCleansUp(t *testing.T) {
	server := newArtifactServer(t, http.StatusOK, awsBundle(t))
	runner := &recordingRunner{failOn: 1}
	inst, tempBase := newLinux(t, server, runner)

	err := inst.Install(context.Background(), version.New("2.20.0", true), config.Options{})
	require.Error(t, err)
	assert.Len(t, runner.calls, 1)
	assertEmptyDir(t, tempBase)
}
