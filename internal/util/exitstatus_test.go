package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectExitCode(t *testing.T) {
	cmd := []string{"rsync", "-P", "/src", "user@host"}

	t.Run("default accepts zero", func(t *testing.T) {
		assert.NoError(t, ExpectExitCode(cmd, &CommandResult{ExitCode: 0}))
	})

	t.Run("code in expected set", func(t *testing.T) {
		assert.NoError(t, ExpectExitCode(cmd, &CommandResult{ExitCode: 24}, 0, 24))
	})

	t.Run("unexpected code", func(t *testing.T) {
		err := ExpectExitCode(cmd, &CommandResult{ExitCode: 1, Stderr: []byte("rsync: connection refused")}, 0)
		require.Error(t, err)

		var statusErr *UnexpectedExitStatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, cmd, statusErr.Command)
		assert.Equal(t, 1, statusErr.Code)
		assert.Equal(t, []int{0}, statusErr.Expected)
		assert.Equal(t, "rsync: connection refused", statusErr.Stderr)
		assert.Contains(t, err.Error(), "'rsync -P /src user@host'")
		assert.Contains(t, err.Error(), "got rc=1")
		assert.Contains(t, err.Error(), "expected [0]")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("zero rejected when not expected", func(t *testing.T) {
		err := ExpectExitCode(cmd, &CommandResult{ExitCode: 0}, 23)
		assert.Error(t, err)
	})
}

func TestParseExitCodes(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    []int
		wantErr bool
	}{
		{name: "nil", input: nil, want: nil},
		{name: "single int64", input: int64(24), want: []int{24}},
		{name: "single int", input: 3, want: []int{3}},
		{name: "numeric string", input: " 23 ", want: []int{23}},
		{name: "mixed list", input: []any{int64(0), "24"}, want: []int{0, 24}},
		{name: "string list", input: []string{"0", "23"}, want: []int{0, 23}},
		{name: "int list", input: []int{0, 1}, want: []int{0, 1}},
		{name: "whole float", input: float64(2), want: []int{2}},
		{name: "fractional float", input: 1.5, wantErr: true},
		{name: "not a number", input: "zero", wantErr: true},
		{name: "bad item in list", input: []any{int64(0), true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExitCodes(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
