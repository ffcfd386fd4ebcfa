package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/bolasblack/syncer/internal/config"
	"github.com/bolasblack/syncer/internal/util"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .syncer.toml in the current directory",
	Long: `Create a .syncer.toml configuration file in the current directory.

Without --template the template is chosen interactively when running in a
terminal, and defaults to "local" otherwise.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("template", "", `config template: "local" or "ssh"`)
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := getCwd()
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("template")
	force, _ := cmd.Flags().GetBool("force")

	template := config.Template(name)
	switch {
	case name == "" && isInteractive():
		if template, err = selectTemplate(); err != nil {
			return err
		}
	case name == "":
		template = config.TemplateLocal
	case template != config.TemplateLocal && template != config.TemplateSSH:
		return usageErrorf("unknown template %q (want local or ssh)", name)
	}

	return runInitWithEnv(util.NewOsEnv(), cmd.OutOrStdout(), cwd, template, force)
}

func runInitWithEnv(env *util.Env, out io.Writer, cwd string, template config.Template, force bool) error {
	configPath := filepath.Join(cwd, util.ConfigFilename)

	if !force {
		if _, err := env.Fs.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s", configPath)
		}
	}

	content, err := config.GenerateConfig(template, "")
	if err != nil {
		return fmt.Errorf("failed to generate configuration: %w", err)
	}

	if err := afero.WriteFile(env.Fs, configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	util.ProgressDone(out, "Created %s\n", configPath)
	fmt.Fprintln(out, "Edit this file to change the rsync executable, output path or default flags.")
	return nil
}

func selectTemplate() (config.Template, error) {
	var selected string
	err := huh.NewSelect[string]().
		Title("Select a template").
		Options(
			huh.NewOption("Local - local paths or rsync daemon destinations", string(config.TemplateLocal)),
			huh.NewOption("SSH - remote hosts over ssh", string(config.TemplateSSH)),
		).
		Value(&selected).
		Run()
	if err != nil {
		return "", fmt.Errorf("template selection cancelled: %w", err)
	}
	return config.Template(selected), nil
}
