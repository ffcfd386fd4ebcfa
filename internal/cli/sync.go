package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bolasblack/syncer/internal/config"
	"github.com/bolasblack/syncer/internal/pipeline"
	"github.com/bolasblack/syncer/internal/rsync"
	"github.com/bolasblack/syncer/internal/util"
)

// optionalBool is a flag value that may fall back to a config default.
type optionalBool struct {
	value bool
	set   bool
}

func (b optionalBool) or(def bool) bool {
	if b.set {
		return b.value
	}
	return def
}

// syncFlags holds the parsed command-line surface of the root command.
type syncFlags struct {
	progress        optionalBool
	partialProgress optionalBool
	changeSummary   optionalBool

	rsh    string
	rshSet bool

	password    string
	askPassword bool

	configPath string
	dryRun     bool
	live       bool
}

func registerSyncFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.SortFlags = false
	flags.Bool("progress", false, "show progress during transfer")
	flags.BoolP("partial-progress", "P", false, "same as --partial --progress")
	flags.BoolP("itemize-changes", "i", false, "output a change-summary for all updates")
	flags.StringP("rsh", "e", "", "specify the remote shell to use (default ssh)")
	flags.String("password", "", "rsync daemon-access password")
	flags.Bool("ask-password", false, "prompt for the daemon-access password")
	flags.BoolP("dry-run", "n", false, "print the rsync command line without running it")
	flags.Bool("live", false, "stream rsync output to the terminal while it runs")
}

func readSyncFlags(cmd *cobra.Command) syncFlags {
	flags := cmd.Flags()
	readBool := func(name string) optionalBool {
		v, _ := flags.GetBool(name)
		return optionalBool{value: v, set: flags.Changed(name)}
	}

	var f syncFlags
	f.progress = readBool("progress")
	f.partialProgress = readBool("partial-progress")
	f.changeSummary = readBool("itemize-changes")
	f.rsh, _ = flags.GetString("rsh")
	f.rshSet = flags.Changed("rsh")
	f.password, _ = flags.GetString("password")
	f.askPassword, _ = flags.GetBool("ask-password")
	f.configPath, _ = flags.GetString("config")
	f.dryRun, _ = flags.GetBool("dry-run")
	f.live, _ = flags.GetBool("live")
	return f
}

// requireDestination validates positional arguments: [SOURCE...] DESTINATION.
func requireDestination(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageErrorf("missing DESTINATION argument")
	}
	return nil
}

// runSync is the root command: run rsync once and persist the result.
func runSync(cmd *cobra.Command, args []string) error {
	cwd, err := getCwd()
	if err != nil {
		return err
	}

	flags := readSyncFlags(cmd)
	env := util.NewOsEnv()
	if flags.live {
		env = env.WithCommandRunner(util.NewCommandRunner().WithTee(cmd.OutOrStdout(), cmd.ErrOrStderr()))
	}

	return runSyncWithEnv(cmd.Context(), env, cmd.OutOrStdout(), cwd, flags, args)
}

func runSyncWithEnv(ctx context.Context, env *util.Env, out io.Writer, cwd string, flags syncFlags, args []string) error {
	if len(args) == 0 {
		return usageErrorf("missing DESTINATION argument")
	}
	if flags.askPassword && flags.password != "" {
		return usageErrorf("--password and --ask-password are mutually exclusive")
	}

	cfg, err := loadConfig(env, cwd, flags.configPath)
	if err != nil {
		return err
	}

	password := flags.password
	if flags.askPassword {
		if password, err = askPassword(); err != nil {
			return err
		}
	}

	opts := buildOptions(cfg, flags, password, args)

	if flags.dryRun {
		fmt.Fprintln(out, strings.Join(rsync.RedactArgs(pipeline.Command(cfg, opts)), " "))
		return nil
	}

	util.ProgressStep(out, "Syncing %s → %s\n", strings.Join(opts.Sources, " "), opts.Destination)
	res, err := pipeline.Run(ctx, env, cfg, opts)
	if err != nil {
		util.ProgressFail(out, "Sync failed, nothing written to %s\n", cfg.Output)
		return err
	}

	printCheckpoints(out, res.Result)
	util.ProgressDone(out, "Result written to %s\n", cfg.Output)
	return nil
}

// buildOptions merges flags over config defaults. args is [SOURCE...] DESTINATION.
func buildOptions(cfg config.Config, flags syncFlags, password string, args []string) rsync.Options {
	sources, destination := args[:len(args)-1], args[len(args)-1]

	opts := []rsync.Option{
		rsync.WithPassword(password),
		rsync.WithChangeSummary(flags.changeSummary.or(cfg.Defaults.ChangeSummary)),
		rsync.WithPartialProgress(flags.partialProgress.or(cfg.Defaults.PartialProgress)),
		rsync.WithProgress(flags.progress.or(cfg.Defaults.Progress)),
	}
	if cfg.RemoteShell != "" {
		opts = append(opts, rsync.WithRemoteShellCommand(cfg.RemoteShell))
	}
	if flags.rshSet {
		shell := flags.rsh
		if shell == "" {
			shell = cfg.RemoteShell
		}
		opts = append(opts, rsync.WithRemoteShell(shell))
	}

	return rsync.NewOptions(sources, destination, opts...)
}
