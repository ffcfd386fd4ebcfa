package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/bolasblack/syncer/internal/config"
	"github.com/bolasblack/syncer/internal/rsync"
	"github.com/bolasblack/syncer/internal/util"
)

func getCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// loadConfig loads the explicit config path, or the optional .syncer.toml in cwd.
// An explicit path that does not exist is an error.
func loadConfig(env *util.Env, cwd, explicitPath string) (config.Config, error) {
	if explicitPath != "" {
		cfg, err := config.LoadConfig(env.Fs, explicitPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config %s: %w", explicitPath, err)
		}
		return cfg, nil
	}

	cfg, _, err := config.LoadConfigOptional(env.Fs, filepath.Join(cwd, util.ConfigFilename))
	return cfg, err
}

// printCheckpoints prints the parsed checkpoints in the order rsync reported them.
func printCheckpoints(w io.Writer, table *rsync.ProgressTable) {
	if table == nil || table.Len() == 0 {
		util.Progress(w, "  no progress reported (use --progress or -P)\n")
		return
	}
	table.Each(func(label string, rec rsync.ProgressRecord) {
		util.Progress(w, "  %-30s %10s %12s %10s\n", label, formatSize(rec.Size), rec.Speed, rec.TimeLeft)
	})
}

// formatSize renders a byte count reported by rsync; unparsable values are kept as is.
func formatSize(size string) string {
	n, err := strconv.ParseUint(size, 10, 64)
	if err != nil {
		return size
	}
	return humanize.Bytes(n)
}

// isInteractive reports whether stdin is a terminal we can prompt on.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// askPassword prompts for the daemon password. Replaced in tests.
var askPassword = promptPassword

func promptPassword() (string, error) {
	if !isInteractive() {
		return "", usageErrorf("--ask-password requires an interactive terminal")
	}

	var password string
	err := huh.NewInput().
		Title("rsync daemon password").
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	if err != nil {
		return "", fmt.Errorf("password prompt cancelled: %w", err)
	}
	return password, nil
}
