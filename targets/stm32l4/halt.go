//go:build stm32l4

package main

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

const (
	scbSCR          = 0xE000ED10
	scbSCR_SLEEPDEP = 1 << 2
)

var scr = (*volatile.Register32)(unsafe.Pointer(uintptr(scbSCR)))

// waitForInterrupt enters Sleep mode (not Stop) until the next interrupt
func waitForInterrupt() {
	scr.ClearBits(scbSCR_SLEEPDEP)
	arm.Asm("wfi")
}
