package statemachine_test

import (
	"time"

	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/statemachine"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Manager", func() {
	var mgr *statemachine.Manager

	BeforeEach(func() {
		mgr = statemachine.NewManager(netlog.Noop())
	})

	It("rejects registering a duplicate machine name", func() {
		a := statemachine.NewMachine("door", "closed", netlog.Noop())
		b := statemachine.NewMachine("door", "closed", netlog.Noop())
		Expect(mgr.Register(a)).To(Succeed())
		Expect(mgr.Register(b)).To(HaveOccurred())
	})

	It("fires a triggered transition from a property setter", func() {
		m := statemachine.NewMachine("door", "closed", netlog.Noop())
		m.OnTransition("latch", func(model map[string]any, state string) string {
			if model["latch"] == "open" {
				return "open"
			}
			return ""
		})
		Expect(mgr.Register(m)).To(Succeed())

		Expect(mgr.SetProperty("door", "latch", "open")).To(Succeed())
		Expect(m.State()).To(Equal("open"))
	})

	It("errors setting a property on an unregistered machine", func() {
		Expect(mgr.SetProperty("missing", "x", 1)).To(HaveOccurred())
	})

	It("tracks requirement state, lazily creating PENDING", func() {
		Expect(mgr.Requirements.State("boot-complete")).To(Equal(statemachine.Pending))
		mgr.Requirements.Set("boot-complete", statemachine.Fail)
		Expect(mgr.Requirements.State("boot-complete")).To(Equal(statemachine.Fail))
	})

	It("rejects updating an undefined global but allows a defined one", func() {
		Expect(mgr.Globals.Update("missing", 1)).To(HaveOccurred())

		mgr.Globals.Define("retries", 0)
		Expect(mgr.Globals.Update("retries", 3)).To(Succeed())
		v, err := mgr.Globals.Get("retries")
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(3))
	})

	It("advances a machine on its periodic tick until Stop", func() {
		m := statemachine.NewMachine("blinker", "off", netlog.Noop())
		m.OnTick(10*time.Millisecond, func(model map[string]any, state string) string {
			if state == "off" {
				return "on"
			}
			return "off"
		})
		Expect(mgr.Register(m)).To(Succeed())

		mgr.Start()
		defer mgr.Stop()

		Eventually(m.State, time.Second, 5*time.Millisecond).Should(Equal("on"))
	})
})
