package sim

import (
	"errors"

	"gopm/core"
	"gopm/framework"
)

// StepOp is what one workload step does
type StepOp uint8

const (
	StepWork    StepOp = iota // stay awake for Ticks OS ticks
	StepSuspend               // sleep in Sleep for at most Timeout OS ticks
	StepRun                   // switch to run mode Run
)

// Step is one entry of a simulated workload
type Step struct {
	Op      StepOp
	Sleep   core.SleepMode
	Run     core.RunMode
	Timeout uint32

	// Interrupt wakes a suspend early, after this many counter ticks (0: none)
	Interrupt uint32

	Ticks uint32
}

// Runner wires simulated hardware, the core and the framework together
type Runner struct {
	HW  *Hardware
	PM  *core.PM
	Sys *framework.System

	slept uint64
}

// NewRunner brings up the core on simulated hardware and registers it
func NewRunner(cfg core.Config, counterFreq, counterMax uint32) (*Runner, error) {
	hw := NewHardware(counterFreq, counterMax)
	sys := framework.NewSystem()

	pm, err := core.HWInit(sys, cfg, hw)
	if err != nil {
		return nil, err
	}
	return &Runner{HW: hw, PM: pm, Sys: sys}, nil
}

var errUnknownStep = errors.New("sim: unknown step")

// Do executes one step and returns the OS ticks it took
func (r *Runner) Do(step Step) (uint32, error) {
	switch step.Op {
	case StepWork:
		r.Sys.AdvanceTick(step.Ticks)
		return step.Ticks, nil

	case StepSuspend:
		if step.Interrupt != 0 {
			r.HW.InterruptAfter(step.Interrupt)
		}
		delta, err := r.Sys.Suspend(step.Sleep, step.Timeout)
		r.slept += uint64(delta)
		return delta, err

	case StepRun:
		return 0, r.Sys.SetRunMode(step.Run)
	}
	return 0, errUnknownStep
}

// Slept returns the OS ticks spent in timed sleeps so far
func (r *Runner) Slept() uint64 {
	return r.slept
}

// Workload generates n deterministic steps that mix awake time, idle
// sleeps with and without early interrupts, reserved sleep modes and run
// mode changes
func Workload(n int, seed uint32) []Step {
	steps := make([]Step, 0, n)
	x := seed
	next := func(m uint32) uint32 {
		x = x*1664525 + 1013904223
		return (x >> 8) % m
	}

	for len(steps) < n {
		switch next(8) {
		case 0:
			steps = append(steps, Step{Op: StepRun, Run: core.RunMode(next(uint32(core.RunModeMax)))})
		case 1:
			steps = append(steps, Step{Op: StepSuspend, Sleep: core.SleepMode(2 + next(4)), Timeout: next(1000) + 1})
		case 2, 3:
			steps = append(steps, Step{Op: StepWork, Ticks: next(50) + 1})
		case 4:
			steps = append(steps, Step{Op: StepSuspend, Sleep: core.SleepIdle, Timeout: next(2000) + 1, Interrupt: next(3000) + 1})
		default:
			steps = append(steps, Step{Op: StepSuspend, Sleep: core.SleepIdle, Timeout: next(2000) + 1})
		}
	}
	return steps
}
