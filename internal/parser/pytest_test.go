package parser

import (
	"testing"

	"ptc/internal/domain"
)

const failedOutput = `============================= test session starts ==============================
collected 4 items

backend/tests/test_api.py .F.F                                           [100%]

=================================== FAILURES ===================================
__________________________________ test_login __________________________________

    def test_login():
        resp = client.post("/login")
>       assert resp.status_code == 200
E       assert 401 == 200

backend/tests/test_api.py:42: AssertionError
____________________________ TestApi.test_timeout ______________________________

    def test_timeout(self):
>       assert wait(1) is None
E       TimeoutError: deadline exceeded

backend/tests/test_api.py:77: TimeoutError
=========================== short test summary info ============================
FAILED backend/tests/test_api.py::test_login - assert 401 == 200
FAILED backend/tests/test_api.py::TestApi::test_timeout - TimeoutError: deadline exceeded
========================= 2 failed, 2 passed in 0.34s ==========================
`

const passedOutput = `============================= test session starts ==============================
collected 3 items

backend/tests/test_api.py ...                                            [100%]

============================== 3 passed in 0.12s ===============================
`

func TestPytestParser_ParseCounts(t *testing.T) {
	parser := NewPytestParser()

	tests := []struct {
		name       string
		result     domain.RunResult
		wantPassed int
		wantFailed int
	}{
		{
			name:       "all passed",
			result:     domain.RunResult{Success: true, Output: passedOutput},
			wantPassed: 3,
			wantFailed: 0,
		},
		{
			name:       "mixed summary",
			result:     domain.RunResult{Success: false, Output: failedOutput},
			wantPassed: 2,
			wantFailed: 2,
		},
		{
			name:       "errors counted as failures",
			result:     domain.RunResult{Success: false, Output: "==== 1 passed, 2 errors in 0.05s ===="},
			wantPassed: 1,
			wantFailed: 2,
		},
		{
			name:       "unparseable success falls back",
			result:     domain.RunResult{Success: true, Output: "garbage"},
			wantPassed: 1,
			wantFailed: 0,
		},
		{
			name:       "unparseable failure falls back",
			result:     domain.RunResult{Success: false, Output: "garbage"},
			wantPassed: 0,
			wantFailed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed, failed := parser.ParseCounts(tt.result)
			if passed != tt.wantPassed || failed != tt.wantFailed {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.wantPassed, tt.wantFailed, passed, failed)
			}
		})
	}
}

func TestPytestParser_ParseFailures(t *testing.T) {
	parser := NewPytestParser()

	failures := parser.ParseFailures(domain.RunResult{Success: false, Output: failedOutput})
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d: %v", len(failures), failures)
	}

	t.Run("module-level failure", func(t *testing.T) {
		f := failures[0]
		if f.TestName != "test_login" {
			t.Errorf("expected test_login, got %s", f.TestName)
		}
		if f.FilePath != "backend/tests/test_api.py" {
			t.Errorf("unexpected file path: %s", f.FilePath)
		}
		if f.Message != "assert 401 == 200" {
			t.Errorf("unexpected message: %q", f.Message)
		}
		if f.File != "backend/tests/test_api.py" || f.Line != 42 {
			t.Errorf("unexpected location: %s:%d", f.File, f.Line)
		}
	})

	t.Run("class method failure", func(t *testing.T) {
		f := failures[1]
		if f.TestName != "TestApi::test_timeout" {
			t.Errorf("expected TestApi::test_timeout, got %s", f.TestName)
		}
		if f.Line != 77 {
			t.Errorf("expected line 77, got %d", f.Line)
		}
		if len(f.Traceback) == 0 {
			t.Error("expected traceback lines")
		}
	})

	t.Run("passing output yields no failures", func(t *testing.T) {
		if got := parser.ParseFailures(domain.RunResult{Success: true, Output: passedOutput}); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})
}
