package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolasblack/syncer/internal/config"
	"github.com/bolasblack/syncer/internal/rsync"
	"github.com/bolasblack/syncer/internal/util"
)

const progressOutput = `sending incremental file list
big.iso
      1048576   45%    2.50MB/s    0:00:12
      2330000  100%    2.63MB/s    0:00:00 (xfr#1, to-chk=0/1)
`

func newTestEnv() (*util.Env, *util.MockCommandRunner) {
	mock := util.NewMockCommandRunner()
	return &util.Env{Fs: afero.NewMemMapFs(), Cmd: mock}, mock
}

func TestRun_Success(t *testing.T) {
	env, mock := newTestEnv()
	mock.Expect("rsync --progress -e ssh -p 2222 /data user@host:/backup",
		&util.CommandResult{Stdout: []byte(progressOutput)}, nil)

	cfg := config.DefaultConfig()
	cfg.Output = "/runs/output.txt"
	opts := rsync.NewOptions([]string{"/data"}, "user.2222@host:/backup", rsync.WithProgress(true))

	res, err := Run(context.Background(), env, cfg, opts)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Status)
	assert.Equal(t, "", res.Error)
	assert.Equal(t, []string{"Percentage: 45%", "Synchronization finished 100%"}, res.Result.Labels())

	data, err := afero.ReadFile(env.Fs, "/runs/output.txt")
	require.NoError(t, err)
	want, err := res.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(want), string(data))
	mock.AssertCalled(t, "rsync --progress -e ssh -p 2222 /data user@host:/backup")
}

func TestRun_UnexpectedExitStatus(t *testing.T) {
	env, mock := newTestEnv()
	mock.ExpectExit("rsync -pass='hunter2' /data user@host", 1, []byte("rsync error: syntax or usage error (code 1)"))

	cfg := config.DefaultConfig()
	opts := rsync.NewOptions([]string{"/data"}, "user@host", rsync.WithPassword("hunter2"))

	_, err := Run(context.Background(), env, cfg, opts)
	require.Error(t, err)

	var statusErr *util.UnexpectedExitStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 1, statusErr.Code)
	assert.Equal(t, []int{0}, statusErr.Expected)
	assert.Equal(t, "rsync -pass='***' /data user@host", strings.Join(statusErr.Command, " "))
	assert.NotContains(t, err.Error(), "hunter2")

	exists, _ := afero.Exists(env.Fs, cfg.Output)
	assert.False(t, exists, "no result is written for an unexpected status")
}

func TestRun_AcceptedNonZeroStatus(t *testing.T) {
	env, mock := newTestEnv()
	mock.Expect("rsync /data /backup", &util.CommandResult{
		Stdout:   []byte("      512  100%    1.00kB/s    0:00:00\n"),
		Stderr:   []byte("file has vanished: \"/data/tmp.lock\"\n"),
		ExitCode: 24,
	}, nil)

	cfg := config.DefaultConfig()
	cfg.ExpectedExitCodes = config.ExitCodes{0, 24}

	res, err := Run(context.Background(), env, cfg, rsync.NewOptions([]string{"/data"}, "/backup"))
	require.NoError(t, err)
	assert.Equal(t, 24, res.Status)
	assert.Contains(t, res.Error, "file has vanished")
	assert.True(t, res.Result.Finished())
}

func TestRun_NoProgressOutput(t *testing.T) {
	env, mock := newTestEnv()
	mock.ExpectSuccess("rsync /data /backup", []byte("sending incremental file list\n"))

	res, err := Run(context.Background(), env, config.DefaultConfig(), rsync.NewOptions([]string{"/data"}, "/backup"))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Result.Len())

	data, err := afero.ReadFile(env.Fs, "output.txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"result": {}`)
}

func TestRun_StartFailure(t *testing.T) {
	env, mock := newTestEnv()
	mock.ExpectFailure("rsync /data /backup", errors.New(`exec: "rsync": executable file not found in $PATH`))

	_, err := Run(context.Background(), env, config.DefaultConfig(), rsync.NewOptions([]string{"/data"}, "/backup"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run rsync")

	var statusErr *util.UnexpectedExitStatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestRun_CustomExecutable(t *testing.T) {
	env, mock := newTestEnv()
	mock.ExpectSuccess("/opt/rsync/bin/rsync -i /data /backup", nil)

	cfg := config.DefaultConfig()
	cfg.Executable = "/opt/rsync/bin/rsync"

	_, err := Run(context.Background(), env, cfg, rsync.NewOptions([]string{"/data"}, "/backup", rsync.WithChangeSummary(true)))
	require.NoError(t, err)
	assert.Len(t, mock.Calls, 1)
}

func TestCommand(t *testing.T) {
	cfg := config.DefaultConfig()
	got := Command(cfg, rsync.NewOptions([]string{"a", "b"}, "user@host", rsync.WithPartialProgress(true)))
	assert.Equal(t, []string{"rsync", "-P", "a", "b", "user@host"}, got)
}
