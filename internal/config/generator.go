// generator.go provides config templates for syncer init.

package config

import (
	"bytes"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Template represents a configuration template type.
type Template string

const (
	// TemplateLocal targets local or rsync-daemon destinations.
	TemplateLocal Template = "local"
	// TemplateSSH targets remote hosts over ssh.
	TemplateSSH Template = "ssh"
)

// TemplateConfig holds a Config and the comments placed before some of its keys.
type TemplateConfig struct {
	Config   Config
	Comments map[string]string // top-level key -> comment
}

// GenerateConfig returns the TOML content for the given template.
// remoteShell overrides the template's remote shell when non-empty.
func GenerateConfig(template Template, remoteShell string) (string, error) {
	tc := getTemplateConfig(template)
	if remoteShell != "" {
		tc.Config.RemoteShell = remoteShell
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tc.Config); err != nil {
		return "", fmt.Errorf("encode template: %w", err)
	}

	content := buf.String()
	for key, comment := range tc.Comments {
		content = insertComment(content, key, comment)
	}

	return SchemaComment + content, nil
}

func getTemplateConfig(template Template) TemplateConfig {
	switch template {
	case TemplateSSH:
		return TemplateConfig{
			Config: Config{
				Executable:        "rsync",
				Output:            "output.txt",
				ExpectedExitCodes: ExitCodes{0, 24},
				RemoteShell:       "ssh",
				Defaults:          Defaults{Progress: true},
			},
			Comments: map[string]string{
				"expected_exit_codes": "24: some source files vanished before they could be transferred",
				"remote_shell":        "used for -e; a port marker in the destination (user.2222@host) adds -p",
			},
		}
	default:
		return TemplateConfig{
			Config: Config{
				Executable:        "rsync",
				Output:            "output.txt",
				ExpectedExitCodes: ExitCodes{0},
				Defaults:          Defaults{Progress: true},
			},
			Comments: map[string]string{
				"output": "the JSON result of every run is written here",
			},
		}
	}
}

// insertComment inserts "# comment" before the first line assigning key.
func insertComment(content, key, comment string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines)+1)
	inserted := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inserted && (strings.HasPrefix(trimmed, key+" ") || strings.HasPrefix(trimmed, key+"=")) {
			result = append(result, "# "+comment)
			inserted = true
		}
		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
