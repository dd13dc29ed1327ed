package picture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"picam.api/v0/pkg/command"
)

func TestSync_MissingDirectoryIsNoOp(t *testing.T) {
	runner := &fakeRunner{run: simulateTools}
	svc := newTestService(t, runner)

	result, err := svc.Sync(context.Background(), "never-created")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotNil(t, result.Files)
	assert.Empty(t, result.Files)
	assert.Empty(t, runner.Calls(), "copy tool must not run")
	assert.NoDirExists(t, filepath.Join(svc.Settings().Root, "never-created"))
}

func TestSync_CopiesAndListsDirectory(t *testing.T) {
	runner := &fakeRunner{run: simulateTools}
	svc := newTestService(t, runner)

	dir := filepath.Join(svc.Settings().Root, "d1")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	result, err := svc.Sync(context.Background(), "d1")
	require.NoError(t, err)
	assert.Len(t, result.Files, 3)
	assert.ElementsMatch(t, []string{"d1/a.jpg", "d1/b.jpg", "d1/c.jpg"}, result.Files)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "rsync", calls[0].name)
	assert.Equal(t, []string{
		"-a", "-r", "-v",
		"-e", "ssh -i /home/pi/cloud.pem",
		dir,
		"pi@cloud.example.com:" + DefaultRemoteDest,
	}, calls[0].args)
}

func TestSync_WithoutKeyFileOmitsRemoteShell(t *testing.T) {
	runner := &fakeRunner{}
	settings := testSettings(t)
	settings.KeyFile = ""
	svc, err := NewService(settings, runner)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(settings.Root, "d1"), 0o755))

	_, err = svc.Sync(context.Background(), "d1")
	require.NoError(t, err)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0].args, "-e")
}

func TestSync_CopyFailureSkipsListing(t *testing.T) {
	runner := &fakeRunner{run: func(name string, args []string) error {
		return &command.Error{Name: name, ExitCode: 255, Stderr: "ssh: connect to host cloud.example.com port 22: Connection refused"}
	}}
	svc := newTestService(t, runner)
	require.NoError(t, os.MkdirAll(filepath.Join(svc.Settings().Root, "d1"), 0o755))

	result, err := svc.Sync(context.Background(), "d1")
	requireKind(t, err, KindExternalTool)
	assert.Nil(t, result)
	assert.Contains(t, FailureText(err), "Connection refused")
}

func TestSync_InvalidToken(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestService(t, runner)

	_, err := svc.Sync(context.Background(), "../outside")
	requireKind(t, err, KindValidation)
	assert.Empty(t, runner.Calls())
}

func TestSync_TokenIsAFile(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestService(t, runner)
	require.NoError(t, os.WriteFile(filepath.Join(svc.Settings().Root, "d1"), []byte("x"), 0o644))

	_, err := svc.Sync(context.Background(), "d1")
	requireKind(t, err, KindFilesystem)
	assert.Empty(t, runner.Calls())
}
