package framework_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"gopm/core"
	"gopm/framework"
	"gopm/sim"
)

var _ = Describe("System", func() {
	var (
		sys *framework.System
		hw  *sim.Hardware
	)

	BeforeEach(func() {
		sys = framework.NewSystem()
		hw = sim.NewHardware(sim.DefaultCounterFreq, sim.DefaultCounterMax)
	})

	Context("registration", func() {
		It("should accept the first registration only", func() {
			pm, err := core.HWInit(sys, core.DefaultConfig(), hw)
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Initialized()).To(BeTrue())
			Expect(sys.TimerMask()).To(Equal(core.DefaultTimerMask))
			Expect(sys.UserData()).To(BeNil())

			err = sys.Init(pm, core.DefaultTimerMask, nil)
			Expect(err).To(MatchError(framework.ErrAlreadyInitialized))
		})

		It("should reject a nil operation table", func() {
			Expect(sys.Init(nil, 0, nil)).To(MatchError(framework.ErrNoOps))
			Expect(sys.Initialized()).To(BeFalse())
		})

		It("should refuse to run before registration", func() {
			_, err := sys.Suspend(core.SleepIdle, 10)
			Expect(err).To(MatchError(framework.ErrNotInitialized))
			Expect(sys.SetRunMode(core.RunLowSpeed)).To(MatchError(framework.ErrNotInitialized))
		})
	})

	Context("suspend", func() {
		var pm *core.PM

		BeforeEach(func() {
			var err error
			pm, err = core.HWInit(sys, core.DefaultConfig(), hw)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should arm the timer around an idle sleep and advance the tick", func() {
			sys.AdvanceTick(7)

			delta, err := sys.Suspend(core.SleepIdle, 250)
			Expect(err).NotTo(HaveOccurred())
			Expect(delta).To(Equal(uint32(250)))
			Expect(sys.Tick()).To(Equal(uint32(257)))

			stats := hw.Stats()
			Expect(stats.Starts).To(Equal([]uint32{8192}))
			Expect(stats.Stops).To(Equal(1))
			Expect(stats.Halts).To(Equal(1))
		})

		It("should not start the counter for an infinite timeout", func() {
			delta, err := sys.Suspend(core.SleepIdle, core.TickMax)
			Expect(err).NotTo(HaveOccurred())
			Expect(delta).To(BeZero())
			Expect(hw.Stats().Starts).To(BeEmpty())
			Expect(hw.Stats().Halts).To(Equal(1))
		})

		It("should not touch the timer for modes outside the mask", func() {
			for _, mode := range []core.SleepMode{core.SleepNone, core.SleepLight, core.SleepShutdown} {
				delta, err := sys.Suspend(mode, 100)
				Expect(err).NotTo(HaveOccurred())
				Expect(delta).To(BeZero())
			}
			Expect(hw.Stats().Starts).To(BeEmpty())
			Expect(hw.Stats().Stops).To(BeZero())
			Expect(pm.Telemetry.Count(core.EvtSleepDegraded)).To(Equal(2))
		})

		It("should keep the tick exact over many short sleeps", func() {
			hw.SetCounterFreq(3)
			for i := 0; i < 300; i++ {
				hw.InterruptAfter(1)
				_, err := sys.Suspend(core.SleepIdle, 1000)
				Expect(err).NotTo(HaveOccurred())
			}
			// 300 counter ticks at 3 Hz are exactly 100 s
			Expect(sys.Tick()).To(Equal(uint32(100000)))
		})
	})

	Context("run mode", func() {
		It("should forward run mode requests", func() {
			pm, err := core.HWInit(sys, core.DefaultConfig(), hw)
			Expect(err).NotTo(HaveOccurred())

			Expect(sys.SetRunMode(core.RunMediumSpeed)).To(Succeed())
			Expect(sys.SetRunMode(core.RunMediumSpeed)).To(Succeed())

			Expect(pm.RunMode()).To(Equal(core.RunMediumSpeed))
			Expect(hw.Stats().Clocks).To(HaveLen(1))
		})
	})
})
