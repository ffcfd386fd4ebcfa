// Package result assembles and persists the outcome of one sync run.
package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bolasblack/syncer/internal/rsync"
)

// SyncResult is the outcome of one invocation: parsed checkpoints, the error
// text rsync printed, and its exit status.
type SyncResult struct {
	Error  string
	Result *rsync.ProgressTable
	Status int
}

// Document is the serialized form of SyncResult.
// Field order and map keys are alphabetical, so the encoding is canonical.
type Document struct {
	Error  string                          `json:"error" jsonschema:"description=Text rsync wrote to standard error (empty when none)"`
	Result map[string]rsync.ProgressRecord `json:"result" jsonschema:"description=Transfer checkpoints keyed by 'Percentage: N%' or 'Synchronization finished 100%'"`
	Status int                             `json:"status" jsonschema:"description=Exit status of rsync"`
}

// New assembles a SyncResult. A nil table is treated as empty.
func New(table *rsync.ProgressTable, errText string, status int) SyncResult {
	if table == nil {
		table = rsync.NewProgressTable()
	}
	return SyncResult{Error: errText, Result: table, Status: status}
}

// Document returns the serializable form of r.
func (r SyncResult) Document() Document {
	records := map[string]rsync.ProgressRecord{}
	if r.Result != nil {
		records = r.Result.Map()
	}
	return Document{Error: r.Error, Result: records, Status: r.Status}
}

// JSON renders r with sorted keys and four-space indentation.
// Equal results always render to identical bytes.
func (r SyncResult) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(r.Document()); err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	// Encode terminates the document with a newline; the file has none.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write renders r and writes it to path, creating parent directories.
func Write(fs afero.Fs, path string, r SyncResult) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}
