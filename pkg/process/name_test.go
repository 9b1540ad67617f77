package process

import "testing"

func TestExecutableName(t *testing.T) {
	if got := ExecutableName("dirmirrord", "windows"); got != "dirmirrord.exe" {
		t.Fatalf("ExecutableName on windows = %q, want dirmirrord.exe", got)
	}
	if got := ExecutableName("dirmirrord", "linux"); got != "dirmirrord" {
		t.Fatalf("ExecutableName on linux = %q, want dirmirrord", got)
	}
	if got := ExecutableName("dirmirrord", "darwin"); got != "dirmirrord" {
		t.Fatalf("ExecutableName on darwin = %q, want dirmirrord", got)
	}
}
