//go:build !windows && !plan9

package process

import (
	"fmt"
	"syscall"
)

// WaitForPID blocks until the process identified by pid exits, returning
// its exit code. It is used for the one case where dirmirror must
// synchronously wait on a child it didn't spawn via Spawn in this process
// — startup actions, which spec.md §4.7 step 6 requires blocking on before
// the daemon transitions out of configuration state.
func WaitForPID(pid int) (int, error) {
	var status syscall.WaitStatus
	for {
		_, err := syscall.Wait4(pid, &status, 0, nil)
		if err == syscall.EINTR {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("unable to wait for pid %d: %w", pid, err)
		}
		return status.ExitStatus(), nil
	}
}
