package rsync

import (
	"encoding/json"
	"regexp"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// progressPattern matches one rsync --progress checkpoint:
//
//	1048576  45%    2.50MB/s    0:00:12
//
// Groups: size, percentage, speed, time left.
var progressPattern = regexp.MustCompile(`(\d+)\s+(\d+%)\s+(\d+.\d+\w+/s)\s+(\d+:\d+:\d+)`)

const finishedPercentage = "100%"

// ProgressRecord is one transfer checkpoint. The percentage is not stored;
// it is part of the checkpoint label.
type ProgressRecord struct {
	Size     string `json:"Size"`
	Speed    string `json:"Speed"`
	TimeLeft string `json:"Time left"`
}

// CheckpointLabel returns the table key for a percentage such as "45%".
func CheckpointLabel(percentage string) string {
	if percentage == finishedPercentage {
		return "Synchronization finished " + percentage
	}
	return "Percentage: " + percentage
}

// ProgressTable maps checkpoint labels to records in order of first appearance.
// Setting an existing label replaces its record but keeps its position.
type ProgressTable struct {
	entries *orderedmap.OrderedMap[string, ProgressRecord]
}

// NewProgressTable creates an empty table.
func NewProgressTable() *ProgressTable {
	return &ProgressTable{entries: orderedmap.New[string, ProgressRecord]()}
}

// Set inserts or replaces the record for label.
func (t *ProgressTable) Set(label string, rec ProgressRecord) {
	t.entries.Set(label, rec)
}

// Get returns the record for label.
func (t *ProgressTable) Get(label string) (ProgressRecord, bool) {
	return t.entries.Get(label)
}

// Len returns the number of checkpoints.
func (t *ProgressTable) Len() int {
	return t.entries.Len()
}

// Labels returns the checkpoint labels in insertion order.
func (t *ProgressTable) Labels() []string {
	labels := make([]string, 0, t.entries.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		labels = append(labels, pair.Key)
	}
	return labels
}

// Each calls fn for every checkpoint in insertion order.
func (t *ProgressTable) Each(fn func(label string, rec ProgressRecord)) {
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Map returns the checkpoints as a plain map. encoding/json sorts its keys,
// which is what the canonical result document relies on.
func (t *ProgressTable) Map() map[string]ProgressRecord {
	m := make(map[string]ProgressRecord, t.entries.Len())
	t.Each(func(label string, rec ProgressRecord) {
		m[label] = rec
	})
	return m
}

// Finished reports whether the 100% checkpoint was seen.
func (t *ProgressTable) Finished() bool {
	_, ok := t.entries.Get(CheckpointLabel(finishedPercentage))
	return ok
}

// Last returns the most recently inserted checkpoint.
func (t *ProgressTable) Last() (string, ProgressRecord, bool) {
	pair := t.entries.Newest()
	if pair == nil {
		return "", ProgressRecord{}, false
	}
	return pair.Key, pair.Value, true
}

// MarshalJSON renders the table in insertion order.
func (t *ProgressTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.entries)
}

// ParseProgress extracts every checkpoint from the complete stdout of rsync.
// Lines that do not look like a checkpoint are ignored; output without any
// checkpoint yields an empty table.
func ParseProgress(stdout string) *ProgressTable {
	table := NewProgressTable()
	for _, m := range progressPattern.FindAllStringSubmatch(stdout, -1) {
		table.Set(CheckpointLabel(m[2]), ProgressRecord{
			Size:     m[1],
			Speed:    m[3],
			TimeLeft: m[4],
		})
	}
	return table
}
