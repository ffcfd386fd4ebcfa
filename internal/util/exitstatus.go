package util

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// UnexpectedExitStatusError reports a process that exited with a code outside
// the accepted set.
type UnexpectedExitStatusError struct {
	Command  []string
	Code     int
	Expected []int
	Stderr   string
}

func (e *UnexpectedExitStatusError) Error() string {
	return fmt.Sprintf("error occurred during '%s' execution: got rc=%d (%s) but expected %v\nError: %s",
		strings.Join(e.Command, " "), e.Code, DescribeExitCode(e.Code), e.Expected, e.Stderr)
}

// ExpectExitCode checks res against the accepted exit codes.
// No expected codes means only 0 is accepted.
func ExpectExitCode(command []string, res *CommandResult, expected ...int) error {
	if len(expected) == 0 {
		expected = []int{0}
	}
	if slices.Contains(expected, res.ExitCode) {
		return nil
	}
	return &UnexpectedExitStatusError{
		Command:  command,
		Code:     res.ExitCode,
		Expected: expected,
		Stderr:   string(res.Stderr),
	}
}

// ParseExitCodes coerces a single code or a list of codes to ints.
// Accepts the shapes TOML and flag values decode into: integers, numeric
// strings, and slices of either. nil yields nil.
func ParseExitCodes(v any) ([]int, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case []any:
		codes := make([]int, 0, len(val))
		for _, item := range val {
			code, err := parseExitCode(item)
			if err != nil {
				return nil, err
			}
			codes = append(codes, code)
		}
		return codes, nil
	case []int:
		return slices.Clone(val), nil
	case []string:
		codes := make([]int, 0, len(val))
		for _, item := range val {
			code, err := parseExitCode(item)
			if err != nil {
				return nil, err
			}
			codes = append(codes, code)
		}
		return codes, nil
	default:
		code, err := parseExitCode(val)
		if err != nil {
			return nil, err
		}
		return []int{code}, nil
	}
}

func parseExitCode(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != float64(int(val)) {
			return 0, fmt.Errorf("invalid exit code %v: not an integer", val)
		}
		return int(val), nil
	case string:
		code, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("invalid exit code %q: %w", val, err)
		}
		return code, nil
	default:
		return 0, fmt.Errorf("invalid exit code type: %T", v)
	}
}
