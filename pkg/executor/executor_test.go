package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	exec := New()

	out, err := exec.Execute(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello\n" {
		t.Errorf("Execute() = %q, want %q", out, "hello\n")
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	ctx := context.Background()
	exec := New()

	_, err := exec.Execute(ctx, "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail on non-zero exit")
	}
	if !strings.Contains(err.Error(), "stderr: boom") {
		t.Errorf("error %q does not include stderr", err)
	}
}

func TestLookPath(t *testing.T) {
	exec := New()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Errorf("LookPath(sh) error = %v", err)
	}
	if _, err := exec.LookPath("definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("LookPath() should fail for a missing binary")
	}
}
