package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bolasblack/syncer/internal/result"
	"github.com/bolasblack/syncer/internal/rsync"
	"github.com/bolasblack/syncer/internal/util"
)

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Convert saved rsync --progress output into the result JSON",
	Long: `Parse rsync --progress output captured earlier (use "-" for stdin) and
print the same JSON document a sync run writes. Nothing is executed.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().Int("status", 0, "exit status to record")
	parseCmd.Flags().String("stderr", "", "file holding the captured standard error")
}

func runParse(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetInt("status")
	stderrPath, _ := cmd.Flags().GetString("stderr")

	return runParseWithEnv(util.NewReadonlyOsEnv(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], stderrPath, status)
}

func runParseWithEnv(env *util.Env, stdin io.Reader, out io.Writer, path, stderrPath string, status int) error {
	stdout, err := readInput(env.Fs, stdin, path)
	if err != nil {
		return err
	}

	var errText []byte
	if stderrPath != "" {
		if errText, err = afero.ReadFile(env.Fs, stderrPath); err != nil {
			return fmt.Errorf("failed to read %s: %w", stderrPath, err)
		}
	}

	data, err := result.New(rsync.ParseProgress(string(stdout)), string(errText), status).JSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func readInput(fs afero.Fs, stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
