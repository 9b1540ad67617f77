//go:build !windows

package main

import (
	"os"
	"syscall"
)

// terminationSignals are those signals dirmirrord considers to be requesting
// shutdown.
var terminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}
