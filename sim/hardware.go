// Package sim provides a simulated power-management back end: a
// low-power counter, a clock tree and a halt instruction, all driven by
// virtual time so the core runs on a development machine.
package sim

import (
	"sync"

	"gopm/core"
)

// Defaults match the STM32L4 LPTIM clocked from LSE
const (
	DefaultCounterFreq = 32768
	DefaultCounterMax  = 0xFFFF
)

// ClockChange records one SetClock request
type ClockChange struct {
	Mode  core.RunMode
	Speed core.RunSpeed
}

// Hardware implements core.PMDriver in virtual time.
//
// While the counter runs, Halt jumps time forward to the compare value,
// or to an earlier interrupt injected with InterruptAfter.
type Hardware struct {
	mu sync.Mutex

	freq uint32
	max  uint32

	running bool
	compare uint32
	count   uint32

	// irqAfter is the counter delay of the next external interrupt, 0 if none
	irqAfter uint32

	halts   int
	starts  []uint32
	stops   int
	clocks  []ClockChange
	current core.RunMode
}

// NewHardware creates simulated hardware with the given counter frequency
// and wrap limit
func NewHardware(freq, limit uint32) *Hardware {
	return &Hardware{freq: freq, max: limit}
}

func (h *Hardware) CounterFreq() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.freq
}

func (h *Hardware) CounterMax() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.max
}

func (h *Hardware) StartCounter(ticks uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = true
	h.compare = ticks
	h.count = 0
	h.starts = append(h.starts, ticks)
}

// StopCounter stops and clears the counter, as disabling an LPTIM does
func (h *Hardware) StopCounter() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = false
	h.count = 0
	h.stops++
}

func (h *Hardware) CounterValue() uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}

func (h *Hardware) SetClock(mode core.RunMode, speed core.RunSpeed) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = mode
	h.clocks = append(h.clocks, ClockChange{Mode: mode, Speed: speed})
}

// Halt sleeps until the compare match or the injected interrupt, whichever
// comes first. With the counter stopped only an injected interrupt wakes
// the CPU, which takes no counter time.
func (h *Hardware) Halt() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.halts++

	irq := h.irqAfter
	h.irqAfter = 0
	if !h.running {
		return
	}

	wake := h.compare
	if irq != 0 && h.count+irq < wake {
		wake = h.count + irq
	}
	if wake > h.count {
		h.count = wake
	}
}

// InterruptAfter schedules an external interrupt that ends the next halt
// after ticks counter ticks
func (h *Hardware) InterruptAfter(ticks uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.irqAfter = ticks
}

// Elapse advances a running counter while the CPU is awake
func (h *Hardware) Elapse(ticks uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.running {
		return
	}
	next := uint64(h.count) + uint64(ticks)
	if next > uint64(h.max) {
		next %= uint64(h.max) + 1
	}
	h.count = uint32(next)
}

// SetCounterFreq changes the counter clock, e.g. to model a source switch
func (h *Hardware) SetCounterFreq(freq uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.freq = freq
}

// Running reports whether the counter is running
func (h *Hardware) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Stats is a snapshot of what the core asked the hardware to do
type Stats struct {
	Halts   int
	Starts  []uint32
	Stops   int
	Clocks  []ClockChange
	Current core.RunMode
}

// Stats returns a copy of the call counters
func (h *Hardware) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		Halts:   h.halts,
		Starts:  append([]uint32(nil), h.starts...),
		Stops:   h.stops,
		Clocks:  append([]ClockChange(nil), h.clocks...),
		Current: h.current,
	}
}
