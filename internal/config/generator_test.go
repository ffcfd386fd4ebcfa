package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConfig(t *testing.T) {
	t.Run("ssh template", func(t *testing.T) {
		content, err := GenerateConfig(TemplateSSH, "")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(content, SchemaComment))
		assert.Contains(t, content, "remote_shell = 'ssh'")
		assert.Contains(t, content, "# 24: some source files vanished")

		cfg, err := Parse([]byte(content))
		require.NoError(t, err)
		assert.Equal(t, ExitCodes{0, 24}, cfg.ExpectedExitCodes)
		assert.Equal(t, "ssh", cfg.RemoteShell)
		assert.True(t, cfg.Defaults.Progress)
	})

	t.Run("local template", func(t *testing.T) {
		content, err := GenerateConfig(TemplateLocal, "")
		require.NoError(t, err)

		assert.NotContains(t, content, "remote_shell")
		assert.Contains(t, content, "# the JSON result of every run is written here\noutput = 'output.txt'")
	})

	t.Run("remote shell override", func(t *testing.T) {
		content, err := GenerateConfig(TemplateSSH, "autossh -M 0")
		require.NoError(t, err)

		cfg, err := Parse([]byte(content))
		require.NoError(t, err)
		assert.Equal(t, "autossh -M 0", cfg.RemoteShell)
	})

	t.Run("unknown template falls back to local", func(t *testing.T) {
		unknown, err := GenerateConfig(Template("bogus"), "")
		require.NoError(t, err)
		local, err := GenerateConfig(TemplateLocal, "")
		require.NoError(t, err)
		assert.Equal(t, local, unknown)
	})
}

func TestInsertComment(t *testing.T) {
	content := "executable = 'rsync'\noutput = 'x'\noutput_dir = 'y'\n"

	got := insertComment(content, "output", "where results go")

	assert.Equal(t, "executable = 'rsync'\n# where results go\noutput = 'x'\noutput_dir = 'y'\n", got)
	assert.Equal(t, content, insertComment(content, "missing", "nothing"))
}
