// Package cli implements the syncer command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bolasblack/syncer/internal/util"
)

var (
	// Version, Commit, and Date are set at build time via ldflags
	Version = "dev"
	Commit  = ""
	Date    = ""
)

var rootCmd = &cobra.Command{
	Use:   "syncer [flags] [SOURCE...] DESTINATION",
	Short: "Run rsync and record its transfer progress as JSON",
	Long: `syncer wraps the native rsync utility.

It builds the rsync command line from a few high-level flags, runs it, parses
the --progress output into checkpoints and writes the outcome (checkpoints,
error text, exit status) to a JSON file.

A non-standard ssh port can be embedded in the destination, e.g.
user.2222@host:/backup, which runs rsync with -e "ssh -p 2222".`,
	Version:           Version,
	Args:              requireDestination,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE:              runSync,
}

// Execute runs the root command and exits with the matching exit code:
// 0 on success, 1 when the sync fails, 2 on usage errors.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(ExitCode(err))
}

// GetRootCmd returns the root command for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("syncer version %s\ncommit: %s\ndate: %s\n", Version, Commit, Date))
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default ./"+util.ConfigFilename+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	registerSyncFlags(rootCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(parseCmd)
}

// setupLogging installs the run logger, tagged with a fresh run id, as the
// slog default and on the command context.
func setupLogging(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	debug := verbose || os.Getenv(util.DebugEnvVar) != ""

	logger := newLogger(cmd.ErrOrStderr(), debug).With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(util.WithLogger(ctx, logger))
	return nil
}
