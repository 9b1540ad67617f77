package process

import "runtime"

// ExecutableName formats an executable name with the appropriate platform
// extension.
func ExecutableName(name, goos string) string {
	if goos == "windows" {
		return name + ".exe"
	}
	return name
}

// currentExecutableName is ExecutableName specialized to the running
// platform.
func currentExecutableName(name string) string {
	return ExecutableName(name, runtime.GOOS)
}
