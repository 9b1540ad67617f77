package clock

import "time"

// StopAndDrainTimer stops a timer and performs a non-blocking drain on its
// channel, allowing it to be stopped and reset without any knowledge of its
// current state.
func StopAndDrainTimer(timer *time.Timer) {
	timer.Stop()
	select {
	case <-timer.C:
	default:
	}
}
