package signal_test

import (
	"github.com/sabouaram/netsim/signal"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Bus", func() {
	It("returns an empty slice for a signal with no handlers", func() {
		b := signal.New(nil)
		Expect(b.Emit("nobody_home", signal.Args{})).To(Equal([]signal.Reply{}))
	})

	It("invokes handlers in registration order and collects replies positionally", func() {
		b := signal.New(nil)
		var order []int

		b.Connect("A", func(a signal.Args) signal.Reply {
			order = append(order, 1)
			return signal.Reply{"who": 1}
		})
		b.Connect("A", func(a signal.Args) signal.Reply {
			order = append(order, 2)
			return nil
		})
		b.Connect("A", func(a signal.Args) signal.Reply {
			order = append(order, 3)
			return signal.Reply{"who": 3}
		})

		replies := b.Emit("A", signal.Args{Node: "n", Type: "Ping"})

		Expect(order).To(Equal([]int{1, 2, 3}))
		Expect(replies).To(HaveLen(3))
		Expect(replies[0]).To(Equal(signal.Reply{"who": 1}))
		Expect(replies[1]).To(Equal(signal.Reply{}))
		Expect(replies[2]).To(Equal(signal.Reply{"who": 3}))
	})

	It("does not abort fan-out when a handler panics", func() {
		b := signal.New(nil)
		ran := false

		b.Connect("A", func(a signal.Args) signal.Reply {
			panic("boom")
		})
		b.Connect("A", func(a signal.Args) signal.Reply {
			ran = true
			return signal.Reply{"ok": true}
		})

		replies := b.Emit("A", signal.Args{})

		Expect(ran).To(BeTrue())
		Expect(replies).To(Equal([]signal.Reply{{}, {"ok": true}}))
	})

	It("builds the fixed connection signal name", func() {
		Expect(signal.ConnectionSignal("NodeA")).To(Equal("NodeA_connected"))
	})
})
