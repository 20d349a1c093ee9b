//go:build stm32l4

package main

import (
	"runtime/volatile"
	"unsafe"
)

// System clock runs from the MSI; run tiers pick an MSI range and a
// regulator range
const (
	rccCR = rccBase + 0x00

	rccCR_MSIRDY       = 1 << 1
	rccCR_MSIRGSEL     = 1 << 3
	rccCR_MSIRANGE_Pos = 4

	pwrBase = 0x40007000
	pwrCR1A = pwrBase + 0x00
	pwrSR2A = pwrBase + 0x14

	pwrCR1_VOS_Pos = 9
	pwrSR2_VOSF    = 1 << 10

	flashACR         = 0x40022000
	flashACR_LATENCY = 0x7
)

var (
	rcccr  = (*volatile.Register32)(unsafe.Pointer(uintptr(rccCR)))
	pwrCR1 = (*volatile.Register32)(unsafe.Pointer(uintptr(pwrCR1A)))
	pwrSR2 = (*volatile.Register32)(unsafe.Pointer(uintptr(pwrSR2A)))
	acr    = (*volatile.Register32)(unsafe.Pointer(uintptr(flashACR)))
)

// msiRanges maps MSIRANGE field values to MHz
var msiRanges = [...]struct {
	mhz   uint32
	field uint32
}{
	{1, 4}, {2, 5}, {4, 6}, {8, 7}, {16, 8}, {24, 9}, {32, 10}, {48, 11},
}

var currentMHz uint32 = 4 // MSI reset value

// msiField returns the highest MSI range not above mhz
func msiField(mhz uint32) (uint32, uint32) {
	best := msiRanges[0]
	for _, r := range msiRanges {
		if r.mhz <= mhz {
			best = r
		}
	}
	return best.field, best.mhz
}

// flashLatency returns the wait states needed at mhz in a regulator range
func flashLatency(mhz uint32, vos uint32) uint32 {
	if vos == 1 {
		switch {
		case mhz <= 16:
			return 0
		case mhz <= 32:
			return 1
		case mhz <= 48:
			return 2
		case mhz <= 64:
			return 3
		}
		return 4
	}
	switch {
	case mhz <= 6:
		return 0
	case mhz <= 12:
		return 1
	case mhz <= 18:
		return 2
	}
	return 3
}

// regulatorRange picks VOS range 1 or 2; range 2 is capped at 26 MHz
func regulatorRange(mhz uint32, voltageRange uint8) uint32 {
	if voltageRange >= 2 && mhz <= 26 {
		return 2
	}
	return 1
}

// SetSystemClock moves SYSCLK to the MSI range closest below mhz.
// Raising the clock raises the regulator and flash wait states first,
// lowering does it after.
func SetSystemClock(mhz uint32, voltageRange uint8) {
	field, actual := msiField(mhz)
	vos := regulatorRange(actual, voltageRange)
	latency := flashLatency(actual, vos)

	if actual > currentMHz {
		setRegulator(vos)
		setLatency(latency)
	}

	// MSIRANGE may only change while the MSI is ready
	for !rcccr.HasBits(rccCR_MSIRDY) {
	}
	rcccr.ReplaceBits(field, 0xF, rccCR_MSIRANGE_Pos)
	rcccr.SetBits(rccCR_MSIRGSEL)

	if actual <= currentMHz {
		setLatency(latency)
		setRegulator(vos)
	}
	currentMHz = actual
}

func setRegulator(vos uint32) {
	pwrCR1.ReplaceBits(vos, 0x3, pwrCR1_VOS_Pos)
	for pwrSR2.HasBits(pwrSR2_VOSF) {
	}
}

func setLatency(latency uint32) {
	acr.ReplaceBits(latency, flashACR_LATENCY, 0)
	for acr.Get()&flashACR_LATENCY != latency {
	}
}
