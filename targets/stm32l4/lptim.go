//go:build stm32l4

package main

import (
	"runtime/volatile"
	"unsafe"

	"gopm/core"
)

// STM32L4 LPTIM1 memory map
const (
	lptimBase = 0x40007C00
	lptimISR  = lptimBase + 0x00 // Interrupt and status
	lptimICR  = lptimBase + 0x04 // Interrupt clear
	lptimIER  = lptimBase + 0x08 // Interrupt enable (writable only while disabled)
	lptimCFGR = lptimBase + 0x0C // Configuration (writable only while disabled)
	lptimCR   = lptimBase + 0x10 // Control
	lptimCMP  = lptimBase + 0x14 // Compare
	lptimARR  = lptimBase + 0x18 // Autoreload
	lptimCNT  = lptimBase + 0x1C // Counter
)

const (
	lptimISR_CMPM  = 1 << 0
	lptimISR_ARRM  = 1 << 1
	lptimISR_CMPOK = 1 << 3
	lptimISR_ARROK = 1 << 4

	lptimICR_ALL = 0x7F

	lptimIER_CMPMIE = 1 << 0

	lptimCR_ENABLE  = 1 << 0
	lptimCR_CNTSTRT = 1 << 2
)

// RCC bits needed to clock LPTIM1 from the LSE
const (
	rccBase     = 0x40021000
	rccAPB1ENR1 = rccBase + 0x58
	rccCCIPR    = rccBase + 0x88
	rccBDCR     = rccBase + 0x90

	rccAPB1ENR1_PWREN    = 1 << 28
	rccAPB1ENR1_LPTIM1EN = 1 << 31

	rccCCIPR_LPTIM1SEL_Pos = 18
	rccCCIPR_LPTIM1SEL_LSE = 3

	rccBDCR_LSEON  = 1 << 0
	rccBDCR_LSERDY = 1 << 1

	pwrCR1_DBP = 1 << 8
)

const (
	lseFreq  = 32768
	lptimMax = 0xFFFF
)

var (
	lptISR  = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimISR)))
	lptICR  = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimICR)))
	lptIER  = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimIER)))
	lptCFGR = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimCFGR)))
	lptCR   = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimCR)))
	lptCMP  = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimCMP)))
	lptARR  = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimARR)))
	lptCNT  = (*volatile.Register32)(unsafe.Pointer(uintptr(lptimCNT)))

	apb1enr1 = (*volatile.Register32)(unsafe.Pointer(uintptr(rccAPB1ENR1)))
	ccipr    = (*volatile.Register32)(unsafe.Pointer(uintptr(rccCCIPR)))
	bdcr     = (*volatile.Register32)(unsafe.Pointer(uintptr(rccBDCR)))
)

// InitLPTIM starts the LSE and routes it to LPTIM1
func InitLPTIM() {
	apb1enr1.SetBits(rccAPB1ENR1_PWREN | rccAPB1ENR1_LPTIM1EN)

	// LSE lives in the backup domain
	pwrCR1.SetBits(pwrCR1_DBP)
	bdcr.SetBits(rccBDCR_LSEON)
	for !bdcr.HasBits(rccBDCR_LSERDY) {
	}

	ccipr.ReplaceBits(rccCCIPR_LPTIM1SEL_LSE, 0x3, rccCCIPR_LPTIM1SEL_Pos)

	lptCR.Set(0)
	lptCFGR.Set(0) // internal clock, prescaler 1
}

// lptimDriver is the low-power counter behind the PM core
type lptimDriver struct{}

func (lptimDriver) CounterFreq() uint32 { return lseFreq }

func (lptimDriver) CounterMax() uint32 { return lptimMax }

// StartCounter restarts LPTIM1 from zero with a compare match at ticks
func (lptimDriver) StartCounter(ticks uint32) {
	// clearing ENABLE resets CNT and unlocks IER
	lptCR.Set(0)
	lptICR.Set(lptimICR_ALL)
	lptIER.Set(lptimIER_CMPMIE)
	lptCR.Set(lptimCR_ENABLE)

	lptARR.Set(lptimMax)
	for !lptISR.HasBits(lptimISR_ARROK) {
	}
	lptICR.Set(lptimISR_ARROK)

	lptCMP.Set(ticks)
	for !lptISR.HasBits(lptimISR_CMPOK) {
	}
	lptICR.Set(lptimISR_CMPOK)

	lptCR.SetBits(lptimCR_CNTSTRT)
}

func (lptimDriver) StopCounter() {
	lptCR.Set(0)
	lptICR.Set(lptimICR_ALL)
}

// CounterValue reads CNT until two reads agree; the counter runs
// asynchronously to the bus clock
func (lptimDriver) CounterValue() uint32 {
	for {
		a := lptCNT.Get()
		b := lptCNT.Get()
		if a == b {
			return a
		}
	}
}

func (lptimDriver) SetClock(mode core.RunMode, speed core.RunSpeed) {
	SetSystemClock(speed.FreqMHz, speed.VoltageRange)
}

func (lptimDriver) Halt() {
	waitForInterrupt()
}

// handleLPTIM acknowledges the compare match that ends a timed sleep
func handleLPTIM() {
	lptICR.Set(lptimISR_CMPM | lptimISR_ARRM)
}
