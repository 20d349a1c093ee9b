//go:build !tinygo

package core

import "sync"

// State is the saved interrupt state on regular Go
type State uintptr

// interruptMask stands in for the global interrupt enable bit on regular Go,
// so host-side simulations get the same exclusion as firmware.
var interruptMask sync.Mutex

// disableInterrupts "masks interrupts" by taking the global lock
func disableInterrupts() State {
	interruptMask.Lock()
	return 0
}

// restoreInterrupts releases the global lock
func restoreInterrupts(state State) {
	interruptMask.Unlock()
}
