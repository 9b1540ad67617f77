package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// FindCommand searches for a command with the specified name within the
// specified list of directories, falling back to the default PATH lookup if
// none of the directories contain it. pkg/configuration uses it to resolve
// an action's configured command once at configuration time; when the
// lookup fails there, the configured name is kept unchanged, so an unknown
// command surfaces only when the action is first spawned.
func FindCommand(name string, paths []string) (string, error) {
	for _, path := range paths {
		target := filepath.Join(path, currentExecutableName(name))
		metadata, err := os.Stat(target)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("unable to query file metadata: %w", err)
		}
		if metadata.Mode()&os.ModeType != 0 {
			continue
		}
		return target, nil
	}

	if resolved, err := exec.LookPath(name); err == nil {
		return resolved, nil
	}

	return "", errors.New("unable to locate command")
}
