// Package pipeline runs one synchronization: build the rsync command, run it,
// check its exit status, parse its progress and persist the result.
package pipeline

import (
	"context"
	"fmt"

	"github.com/bolasblack/syncer/internal/config"
	"github.com/bolasblack/syncer/internal/result"
	"github.com/bolasblack/syncer/internal/rsync"
	"github.com/bolasblack/syncer/internal/util"
)

// Command returns the full command line (executable first) for opts.
func Command(cfg config.Config, opts rsync.Options) []string {
	return append([]string{cfg.Executable}, rsync.BuildArgs(opts)...)
}

// Run executes the sync tool once and writes the result document to
// cfg.Output. An exit status outside cfg.ExpectedExitCodes is returned as
// *util.UnexpectedExitStatusError and nothing is written. The tool is never
// retried.
func Run(ctx context.Context, env *util.Env, cfg config.Config, opts rsync.Options) (result.SyncResult, error) {
	logger := util.Logger(ctx)

	command := Command(cfg, opts)
	redacted := rsync.RedactArgs(command)
	logger.Debug("running sync tool", "command", redacted)

	res, err := env.Cmd.Run(ctx, command[0], command[1:]...)
	if err != nil {
		return result.SyncResult{}, fmt.Errorf("failed to run %s: %w", cfg.Executable, err)
	}
	logger.Debug("sync tool finished",
		"status", res.ExitCode,
		"stdout_bytes", len(res.Stdout),
		"stderr_bytes", len(res.Stderr))

	if err := util.ExpectExitCode(redacted, res, cfg.ExpectedExitCodes...); err != nil {
		return result.SyncResult{}, err
	}

	table := rsync.ParseProgress(string(res.Stdout))
	logger.Debug("parsed progress", "checkpoints", table.Len(), "finished", table.Finished())

	out := result.New(table, string(res.Stderr), res.ExitCode)
	if err := result.Write(env.Fs, cfg.Output, out); err != nil {
		return out, err
	}
	logger.Info("result written", "path", cfg.Output, "status", out.Status, "checkpoints", table.Len())

	return out, nil
}
