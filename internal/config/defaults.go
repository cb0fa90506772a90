package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the config file looked up in the project root
	DefaultConfigFile = "ptc.yaml"
	// DefaultClassPattern identifies test classes
	DefaultClassPattern = "Test*"
	// DefaultFuncPattern identifies test functions
	DefaultFuncPattern = "test_*"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputDir is the default directory for run artifacts
	DefaultOutputDir = ".ptc"
	// DefaultHistoryDBFile is the run-history database file name
	DefaultHistoryDBFile = "history.db"
	// DefaultProcessors is the default number of processors
	DefaultProcessors = 4
)

// DefaultFilePatterns are the file name globs identifying test files.
var DefaultFilePatterns = []string{"test_*.py", "*_test.py"}

// DefaultPytestCommand invokes pytest through the project's
// interpreter so virtualenv resolution follows PATH.
var DefaultPytestCommand = []string{"python", "-m", "pytest"}
