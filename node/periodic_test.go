package node_test

import (
	"time"

	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/node"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Periodic emission", func() {
	It("enforces at most one active periodic task per message", func() {
		bus := signal.New(netlog.Noop())
		iface := wire.NewMapInterface(wire.BigEndian)
		out := message.NewOut("Heartbeat", iface, nil)
		out.SetInterval(20 * time.Millisecond)
		catalog := node.Catalog{"Heartbeat": {Direction: message.Out, Wrapper: out}}

		n, err := node.New(node.Config{
			Name:       "beat",
			Role:       node.ServerRole,
			Protocol:   node.TCP,
			Host:       "127.0.0.1",
			Port:       0,
			Dispatcher: node.OpaqueDispatcher,
			Bus:        bus,
			Iface:      iface,
			Messages:   catalog,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(n.Start()).To(Succeed())
		defer n.Stop()

		Expect(n.StartPeriodic("Heartbeat")).To(Succeed())
		Expect(n.StartPeriodic("Heartbeat")).To(HaveOccurred())
		Expect(out.IsPeriodic()).To(BeTrue())

		Eventually(func() string { return n.LastMessageSent() }, time.Second).Should(Equal("Heartbeat"))

		Expect(n.StopPeriodic("Heartbeat")).To(Succeed())
		Expect(out.IsPeriodic()).To(BeFalse())

		// Stopping twice is a no-op, not an error.
		Expect(n.StopPeriodic("Heartbeat")).To(Succeed())
	})
})
