package model

import (
	"fmt"
	"strings"
	"time"
)

// TestStatus is the verdict of one test entrypoint.
type TestStatus int

const (
	// Success means the entrypoint behaved as expected.
	Success TestStatus = iota
	// Failure means the entrypoint failed, or did not revert when asked to.
	Failure
	// Skipped means the entrypoint asked to be skipped.
	Skipped
)

func (s TestStatus) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Skipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText renders the status name in JSON and YAML reports.
func (s TestStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name.
func (s *TestStatus) UnmarshalText(text []byte) error {
	switch strings.ToUpper(string(text)) {
	case "SUCCESS":
		*s = Success
	case "FAILURE":
		*s = Failure
	case "SKIPPED":
		*s = Skipped
	default:
		return fmt.Errorf("unknown test status %q", text)
	}

	return nil
}

// TestOutcome is the classified result of one entrypoint run.
type TestOutcome struct {
	Name    string        `json:"name" yaml:"name"`
	Status  TestStatus    `json:"status" yaml:"status"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Output  string        `json:"output,omitempty" yaml:"output,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}

// FileResult holds the outcomes of every entrypoint of one test file. Err is
// set instead when the file could not be compiled.
type FileResult struct {
	Path     Path          `json:"path" yaml:"path"`
	Outcomes []TestOutcome `json:"outcomes" yaml:"outcomes"`
	Err      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary counts outcomes across files.
type Summary struct {
	Files   int `json:"files" yaml:"files"`
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
	Skipped int `json:"skipped" yaml:"skipped"`
	Errored int `json:"errored" yaml:"errored"`
}

// Summarize counts the outcomes of results.
func Summarize(results []FileResult) Summary {
	summary := Summary{Files: len(results)}

	for _, result := range results {
		if result.Err != "" {
			summary.Errored++
		}

		for _, outcome := range result.Outcomes {
			switch outcome.Status {
			case Success:
				summary.Passed++
			case Failure:
				summary.Failed++
			case Skipped:
				summary.Skipped++
			}
		}
	}

	return summary
}

// OK reports whether nothing failed and every file compiled.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}
