package process

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFindCommandPrefersListedDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit semantics differ on windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "mytool")
	if err := os.WriteFile(target, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal("unable to create fake executable:", err)
	}

	resolved, err := FindCommand("mytool", []string{dir})
	if err != nil {
		t.Fatal("FindCommand:", err)
	}
	if resolved != target {
		t.Fatalf("resolved = %q, want %q", resolved, target)
	}
}

func TestFindCommandSkipsDirectoryEntry(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit semantics differ on windows")
	}

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "mytool"), 0755); err != nil {
		t.Fatal("unable to create directory entry:", err)
	}

	if _, err := FindCommand("mytool", []string{dir}); err == nil {
		t.Fatal("FindCommand succeeded against a directory entry with no PATH fallback")
	}
}

func TestFindCommandFallsBackToPATH(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no guaranteed PATH executable name on windows")
	}

	resolved, err := FindCommand("sh", nil)
	if err != nil {
		t.Fatal("FindCommand:", err)
	}
	if resolved == "" {
		t.Fatal("FindCommand returned an empty path for a command found on PATH")
	}
}

func TestFindCommandFailsForUnknownCommand(t *testing.T) {
	if _, err := FindCommand("dirmirror-definitely-not-a-real-command", nil); err == nil {
		t.Fatal("FindCommand succeeded for a nonexistent command")
	}
}
