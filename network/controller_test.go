package network_test

import (
	"net"
	"time"

	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/network"
	"github.com/sabouaram/netsim/node"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func dialTCP(addr string) (net.Conn, error) {
	return net.Dial("tcp", addr)
}

func newTestNode(name string, bus *signal.Bus, iface wire.Interface, catalog node.Catalog) *node.Node {
	n, err := node.New(node.Config{
		Name:       name,
		Role:       node.ServerRole,
		Protocol:   node.TCP,
		Host:       "127.0.0.1",
		Port:       0,
		Dispatcher: node.OpaqueDispatcher,
		Bus:        bus,
		Iface:      iface,
		Messages:   catalog,
		Log:        netlog.Noop(),
	})
	Expect(err).ToNot(HaveOccurred())
	return n
}

var _ = Describe("Controller", func() {
	var bus *signal.Bus
	var iface wire.Interface
	var ctl *network.Controller

	BeforeEach(func() {
		bus = signal.New(netlog.Noop())
		iface = wire.NewMapInterface(wire.BigEndian)
		ctl = network.New(bus, netlog.Noop())
	})

	It("rejects registering a duplicate node name", func() {
		a := newTestNode("A", bus, iface, node.Catalog{})
		b := newTestNode("A", bus, iface, node.Catalog{})

		Expect(ctl.Register(a)).To(Succeed())
		Expect(ctl.Register(b)).To(HaveOccurred())
	})

	It("resolves a message to its unique owning node and sends it", func() {
		out := message.NewOut("Pong", iface, map[string]any{"seq": float64(0)})
		a := newTestNode("A", bus, iface, node.Catalog{"Pong": {Direction: message.Out, Wrapper: out}})

		Expect(ctl.Register(a)).To(Succeed())
		Expect(a.Start()).To(Succeed())
		defer a.Stop()

		Expect(ctl.SendMessage("Pong", "")).To(Succeed())
		Eventually(a.LastMessageSent, time.Second).Should(Equal("Pong"))
	})

	It("panics resolving an ambiguous message name with no explicit node", func() {
		outA := message.NewOut("Shared", iface, nil)
		outB := message.NewOut("Shared", iface, nil)
		a := newTestNode("A", bus, iface, node.Catalog{"Shared": {Direction: message.Out, Wrapper: outA}})
		b := newTestNode("B", bus, iface, node.Catalog{"Shared": {Direction: message.Out, Wrapper: outB}})
		Expect(ctl.Register(a)).To(Succeed())
		Expect(ctl.Register(b)).To(Succeed())

		Expect(func() { _ = ctl.SendMessage("Shared", "") }).To(Panic())
	})

	It("round-trips update_data and get_data on a dotted path", func() {
		out := message.NewOut("Pong", iface, map[string]any{"seq": float64(0), "nested": map[string]any{"x": float64(1)}})
		a := newTestNode("A", bus, iface, node.Catalog{"Pong": {Direction: message.Out, Wrapper: out}})
		Expect(ctl.Register(a)).To(Succeed())

		Expect(ctl.UpdateData("Pong.nested.x", float64(42), "A", false)).To(Succeed())
		v, err := ctl.GetData("Pong.nested.x", "A", false, false, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(float64(42)))
	})

	It("resets every OUT message on a node when none are named", func() {
		out := message.NewOut("Pong", iface, map[string]any{"seq": float64(7)})
		a := newTestNode("A", bus, iface, node.Catalog{"Pong": {Direction: message.Out, Wrapper: out}})
		Expect(ctl.Register(a)).To(Succeed())

		Expect(ctl.UpdateData("Pong.seq", float64(99), "A", true)).To(Succeed())
		Expect(ctl.ResetData("A", nil)).To(Succeed())

		v, err := ctl.GetData("Pong", "A", true, false, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(map[string]any{}))
	})

	It("reports connection status excluding control (zmq) nodes", func() {
		a := newTestNode("A", bus, iface, node.Catalog{})
		ctrlNode := newTestNode("zmq-control", bus, iface, node.Catalog{})
		Expect(ctl.Register(a)).To(Succeed())
		Expect(ctl.Register(ctrlNode)).To(Succeed())

		Expect(ctl.Start()).To(Succeed())
		defer ctl.Stop()

		conn, err := dialTCP(a.BoundAddr())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Eventually(func() bool { return ctl.GetConnectionResult(true) }, time.Second).Should(BeTrue())
	})

	It("enforces a single active periodic task per (node, message) through the controller", func() {
		out := message.NewOut("Heartbeat", iface, nil)
		a := newTestNode("A", bus, iface, node.Catalog{"Heartbeat": {Direction: message.Out, Wrapper: out}})
		Expect(ctl.Register(a)).To(Succeed())
		Expect(a.Start()).To(Succeed())
		defer a.Stop()

		Expect(ctl.StartPeriodic("Heartbeat", "", 10*time.Millisecond)).To(Succeed())
		Expect(ctl.StartPeriodic("Heartbeat", "", 10*time.Millisecond)).To(HaveOccurred())
		Expect(ctl.StopPeriodic("Heartbeat", "")).To(Succeed())
	})

	It("rejects stopping a periodic task that is not active", func() {
		out := message.NewOut("Heartbeat", iface, nil)
		a := newTestNode("A", bus, iface, node.Catalog{"Heartbeat": {Direction: message.Out, Wrapper: out}})
		Expect(ctl.Register(a)).To(Succeed())
		Expect(a.Start()).To(Succeed())
		defer a.Stop()

		Expect(ctl.StopPeriodic("Heartbeat", "")).To(HaveOccurred())
	})
})
