package domain

// TestFailure represents a failed test case
type TestFailure struct {
	TestName  string   `json:"test_name"` // Qualified name within the file
	FilePath  string   `json:"file_path"`
	Message   string   `json:"message"`
	Traceback []string `json:"traceback"`
	File      string   `json:"file"`
	Line      int      `json:"line"`
	Resolved  bool     `json:"resolved,omitempty"` // Track if failure is marked as resolved
}
