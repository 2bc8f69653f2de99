package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      stderrors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "not found",
			err:      NotFound("habit", "abc"),
			expected: `Error: habit "abc": not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to load %s", "habits")
	if got != "Error: failed to load habits" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestValidationErrorIsInvalidInput(t *testing.T) {
	err := Invalid("title", "must not be empty")
	if !Is(err, ErrInvalidInput) {
		t.Errorf("Is(%v, ErrInvalidInput) = false, want true", err)
	}
	wrapped := fmt.Errorf("create habit: %w", err)
	if !Is(wrapped, ErrInvalidInput) {
		t.Errorf("wrapped validation error lost ErrInvalidInput")
	}
	var ve *ValidationError
	if !As(wrapped, &ve) || ve.Field != "title" {
		t.Errorf("As() did not recover the ValidationError, got %+v", ve)
	}
	if Is(err, ErrNotFound) {
		t.Error("validation error should not match ErrNotFound")
	}
}

func TestNotFound(t *testing.T) {
	err := NotFound("habit", "123")
	if !Is(err, ErrNotFound) {
		t.Errorf("Is(%v, ErrNotFound) = false", err)
	}
}

func TestImportError(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := error(&ImportError{Reason: "document is not valid JSON", Err: cause})

	if !strings.Contains(err.Error(), "document is not valid JSON") {
		t.Errorf("Error() = %q, missing reason", err.Error())
	}
	if !Is(err, cause) {
		t.Error("ImportError should unwrap to its cause")
	}
	var ie *ImportError
	if !As(fmt.Errorf("import: %w", err), &ie) {
		t.Error("As() should find a wrapped ImportError")
	}

	bare := &ImportError{Reason: "empty document"}
	if bare.Error() != "import failed: empty document" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(stderrors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
