package config

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestLoadConfig(t *testing.T) {
	content := `
executable = "/usr/local/bin/rsync"
output = "results/run.json"
expected_exit_codes = [0, "24"]
remote_shell = "ssh -i ~/.ssh/backup"

[defaults]
progress = true
change_summary = true
`
	memFs := afero.NewMemMapFs()
	path := "/project/.syncer.toml"
	if err := afero.WriteFile(memFs, path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := LoadConfig(memFs, path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Executable != "/usr/local/bin/rsync" {
		t.Errorf("expected executable '/usr/local/bin/rsync', got %q", cfg.Executable)
	}
	if cfg.Output != "results/run.json" {
		t.Errorf("expected output 'results/run.json', got %q", cfg.Output)
	}
	if len(cfg.ExpectedExitCodes) != 2 || cfg.ExpectedExitCodes[0] != 0 || cfg.ExpectedExitCodes[1] != 24 {
		t.Errorf("expected exit codes [0 24], got %v", cfg.ExpectedExitCodes)
	}
	if cfg.RemoteShell != "ssh -i ~/.ssh/backup" {
		t.Errorf("unexpected remote_shell %q", cfg.RemoteShell)
	}
	if !cfg.Defaults.Progress || !cfg.Defaults.ChangeSummary || cfg.Defaults.PartialProgress {
		t.Errorf("unexpected defaults %+v", cfg.Defaults)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	memFs := afero.NewMemMapFs()
	if err := afero.WriteFile(memFs, "/p/.syncer.toml", []byte("remote_shell = 'autossh'\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := LoadConfig(memFs, "/p/.syncer.toml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Executable != "rsync" {
		t.Errorf("expected default executable 'rsync', got %q", cfg.Executable)
	}
	if cfg.Output != "output.txt" {
		t.Errorf("expected default output 'output.txt', got %q", cfg.Output)
	}
	if len(cfg.ExpectedExitCodes) != 1 || cfg.ExpectedExitCodes[0] != 0 {
		t.Errorf("expected default exit codes [0], got %v", cfg.ExpectedExitCodes)
	}
}

func TestLoadConfigSingleExitCode(t *testing.T) {
	for _, value := range []string{"23", `"23"`} {
		cfg, err := Parse([]byte("expected_exit_codes = " + value + "\n"))
		if err != nil {
			t.Fatalf("Parse(%s) failed: %v", value, err)
		}
		if len(cfg.ExpectedExitCodes) != 1 || cfg.ExpectedExitCodes[0] != 23 {
			t.Errorf("Parse(%s): expected [23], got %v", value, cfg.ExpectedExitCodes)
		}
	}
}

func TestLoadConfigInvalidExitCode(t *testing.T) {
	_, err := Parse([]byte(`expected_exit_codes = ["zero"]`))
	if err == nil {
		t.Fatal("expected error for non-numeric exit code")
	}
	if !strings.Contains(err.Error(), "expected_exit_codes") {
		t.Errorf("error should name the key, got %v", err)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	if _, err := Parse([]byte("executable = ")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig(afero.NewMemMapFs(), "/nonexistent/.syncer.toml")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadConfigOptional(t *testing.T) {
	memFs := afero.NewMemMapFs()

	cfg, found, err := LoadConfigOptional(memFs, "/p/.syncer.toml")
	if err != nil || found {
		t.Fatalf("expected defaults without error, got found=%v err=%v", found, err)
	}
	if cfg.Executable != "rsync" {
		t.Errorf("expected default config, got %+v", cfg)
	}

	if err := afero.WriteFile(memFs, "/p/.syncer.toml", []byte("output = [1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadConfigOptional(memFs, "/p/.syncer.toml"); err == nil {
		t.Error("expected error for broken config")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	memFs := afero.NewMemMapFs()
	cfg := Config{
		Executable:        "rsync",
		Output:            "out.json",
		ExpectedExitCodes: ExitCodes{0, 23, 24},
		RemoteShell:       "ssh",
		Defaults:          Defaults{PartialProgress: true},
	}

	if err := SaveConfig(memFs, "/p/.syncer.toml", cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, _ := afero.ReadFile(memFs, "/p/.syncer.toml")
	if !strings.HasPrefix(string(data), SchemaComment) {
		t.Error("expected schema comment header")
	}

	loaded, err := LoadConfig(memFs, "/p/.syncer.toml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Output != "out.json" || loaded.RemoteShell != "ssh" || !loaded.Defaults.PartialProgress {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if len(loaded.ExpectedExitCodes) != 3 || loaded.ExpectedExitCodes[2] != 24 {
		t.Errorf("round trip exit codes mismatch: %v", loaded.ExpectedExitCodes)
	}
}
