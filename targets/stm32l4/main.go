//go:build stm32l4

package main

import (
	"device/stm32"
	"machine"
	"runtime/interrupt"

	"gopm/config"
	"gopm/core"
	"gopm/framework"
	"gopm/protocol"
)

const (
	telemetryBaud = 115200

	// OS ticks between wakeups of the demo loop
	wakeInterval = 500
	// wakeups spent in each run tier before moving on
	wakesPerTier = 4
)

// stm32l4Speeds is the run tier table for the MSI-clocked L4
var stm32l4Speeds = map[core.RunMode]core.RunSpeed{
	core.RunHighSpeed:   {FreqMHz: 48, VoltageRange: 1},
	core.RunNormalSpeed: {FreqMHz: 24, VoltageRange: 1},
	core.RunMediumSpeed: {FreqMHz: 16, VoltageRange: 2},
	core.RunLowSpeed:    {FreqMHz: 2, VoltageRange: 2},
}

func main() {
	uart := machine.DefaultUART
	err := uart.Configure(machine.UARTConfig{BaudRate: telemetryBaud})
	if err != nil {
		return
	}

	InitLPTIM()
	irq := interrupt.New(stm32.IRQ_LPTIM1, func(interrupt.Interrupt) {
		handleLPTIM()
	})
	irq.Enable()

	settings := config.DefaultSTM32L4Config()
	settings.PM.RunSpeeds = stm32l4Speeds

	sys := framework.NewSystem()
	pm := core.MustHWInit(sys, settings.PM, lptimDriver{})

	frames := protocol.NewFrameWriter(uart)
	pm.Telemetry.SetEventSink(func(evt core.Event) {
		_ = frames.WriteFrame(evt.Encode)
	})
	pm.Telemetry.SetDebugWriter(func(s string) {
		println(s)
	})

	// bring the clock to the configured initial tier
	initial := pm.RunSpeedFor(pm.RunMode())
	SetSystemClock(initial.FreqMHz, initial.VoltageRange)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	mode := core.RunHighSpeed
	for wakes := 0; ; wakes++ {
		if wakes%wakesPerTier == 0 {
			_ = sys.SetRunMode(mode)
			mode = (mode + 1) % core.RunModeMax
		}

		led.Set(!led.Get())
		if _, err := sys.Suspend(core.SleepIdle, wakeInterval); err != nil {
			println("[PM] suspend:", err.Error())
		}
	}
}
