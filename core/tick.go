package core

// TickConverter maps between OS ticks and low-power counter ticks.
//
// The counter frequency is read from the driver on every conversion, as the
// counter clock source may be reconfigured at run time. The reverse
// direction carries the sub-tick remainder across calls so that summing
// many short sleeps does not drift behind real time.
type TickConverter struct {
	osTickRate uint64
	drv        PMDriver

	// residual is the remainder of the last reverse conversion, in units of
	// OS ticks times residualFreq. Always < residualFreq.
	residual     uint64
	residualFreq uint64
}

// NewTickConverter creates a converter for an OS tick rate in Hz
func NewTickConverter(osTickRate uint32, drv PMDriver) *TickConverter {
	if osTickRate == 0 {
		panic("pm: OS tick rate is zero")
	}
	return &TickConverter{
		osTickRate: uint64(osTickRate),
		drv:        drv,
	}
}

func (c *TickConverter) counterFreq() uint64 {
	freq := c.drv.CounterFreq()
	if freq == 0 {
		panic("pm: low-power counter frequency is zero")
	}
	return uint64(freq)
}

// ToHardware converts an OS tick timeout to counter ticks, rounding down and
// clamping to the counter range. Rounding down may wake the CPU up to one
// counter tick early; the framework simply goes back to sleep.
func (c *TickConverter) ToHardware(osTicks uint32) uint32 {
	hw := c.counterFreq() * uint64(osTicks) / c.osTickRate

	if limit := uint64(c.drv.CounterMax()); hw > limit {
		hw = limit
	}
	return uint32(hw)
}

// ToOS converts counter ticks observed after a sleep to OS ticks and
// carries the remainder into the next call. Each counter reading must be
// converted exactly once, or the same ticks are counted twice.
func (c *TickConverter) ToOS(hwTicks uint32) uint32 {
	freq := c.counterFreq()
	scaled := uint64(hwTicks) * c.osTickRate

	state := disableInterrupts()
	c.rescale(freq)
	total := scaled + c.residual
	c.residual = total % freq
	restoreInterrupts(state)

	ticks := total / freq
	if ticks >= uint64(TickMax) {
		// TickMax means "forever"; never hand it back as a duration
		ticks = uint64(TickMax) - 1
	}
	return uint32(ticks)
}

// rescale moves the residual to units of a new counter frequency, rounding
// down so it stays below freq. Call with interrupts masked.
func (c *TickConverter) rescale(freq uint64) {
	if c.residualFreq == freq {
		return
	}
	if c.residualFreq != 0 {
		c.residual = c.residual * freq / c.residualFreq
	}
	c.residualFreq = freq
}

// Residual returns the carried remainder, in OS ticks times the current
// counter frequency
func (c *TickConverter) Residual() uint64 {
	freq := c.counterFreq()

	state := disableInterrupts()
	c.rescale(freq)
	r := c.residual
	restoreInterrupts(state)
	return r
}
