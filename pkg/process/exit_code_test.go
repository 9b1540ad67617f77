package process

import (
	"os/exec"
	"runtime"
	"testing"
)

// TestExitCodeForProcessState runs a real child process that exits with a
// known non-zero status and verifies the extracted exit code.
func TestExitCodeForProcessState(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	cmd := exec.Command("/bin/sh", "-c", "exit 3")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected non-nil error from a process exiting with status 3")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("err = %T, want *exec.ExitError", err)
	}

	code, codeErr := ExitCodeForProcessState(exitErr.ProcessState)
	if codeErr != nil {
		t.Fatal("ExitCodeForProcessState:", codeErr)
	}
	if code != 3 {
		t.Fatalf("code = %d, want 3", code)
	}
}

// TestIsPOSIXShellCommandNotFound verifies the 127 classification against a
// real shell invocation of a nonexistent command.
func TestIsPOSIXShellCommandNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	cmd := exec.Command("/bin/sh", "-c", "dirmirror-definitely-not-a-real-command")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected non-nil error when running a nonexistent command")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("err = %T, want *exec.ExitError", err)
	}
	if !IsPOSIXShellCommandNotFound(exitErr.ProcessState) {
		t.Error("expected a command-not-found classification")
	}
}
