package domain

import "time"

// RunResult represents the result of executing one plan entry
type RunResult struct {
	TestID   string        // Node id of the executed test
	Success  bool          // Whether the test passed
	Output   string        // Raw output from the test runner
	Error    error         // Error if execution failed
	Duration time.Duration // Time taken to execute
}

// RunMeta contains metadata about a test run
type RunMeta struct {
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	MarkerExpr      string  `json:"marker_expr,omitempty"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete output structure for run results
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
