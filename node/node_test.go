package node_test

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/node"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func portOf(addr string) int {
	_, p, err := net.SplitHostPort(addr)
	Expect(err).ToNot(HaveOccurred())
	n, err := strconv.Atoi(p)
	Expect(err).ToNot(HaveOccurred())
	return n
}

var _ = Describe("Node lifecycle", func() {
	var bus *signal.Bus
	var iface wire.Interface

	BeforeEach(func() {
		bus = signal.New(netlog.Noop())
		iface = wire.NewMapInterface(wire.BigEndian)
	})

	It("starts a TCP server, accepts a client, and marks it connected", func() {
		srv, err := node.New(node.Config{
			Name:       "server",
			Role:       node.ServerRole,
			Protocol:   node.TCP,
			Host:       "127.0.0.1",
			Port:       0,
			Dispatcher: node.OpaqueDispatcher,
			Bus:        bus,
			Iface:      iface,
			Log:        netlog.Noop(),
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(srv.Start()).To(Succeed())
		defer srv.Stop()

		addr := srv.BoundAddr()
		Expect(addr).ToNot(BeEmpty())

		conn, err := net.Dial("tcp", addr)
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		_, err = conn.Write([]byte("hello"))
		Expect(err).ToNot(HaveOccurred())

		buf := make([]byte, 64)
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, err := conn.Read(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("success"))

		Eventually(srv.IsConnected, time.Second).Should(BeTrue())
	})

	It("emits a bus signal exactly once per connection transition", func() {
		var count int
		bus.Connect(signal.ConnectionSignal("server2"), func(a signal.Args) signal.Reply {
			count++
			return nil
		})

		srv, err := node.New(node.Config{
			Name:       "server2",
			Role:       node.ServerRole,
			Protocol:   node.TCP,
			Host:       "127.0.0.1",
			Port:       0,
			Dispatcher: node.OpaqueDispatcher,
			Bus:        bus,
			Iface:      iface,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(srv.Start()).To(Succeed())
		defer srv.Stop()

		conn, err := net.Dial("tcp", srv.BoundAddr())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Eventually(func() int { return count }, time.Second).Should(Equal(1))

		// A second write on the same connection must not re-fire the signal.
		conn.Write([]byte("again"))
		time.Sleep(100 * time.Millisecond)
		Expect(count).To(Equal(1))
	})

	It("sends an enqueued OUT message over a spec-framed TCP connection", func() {
		out := message.NewOut("Ping", iface, map[string]any{"seq": float64(1)})
		catalog := node.Catalog{"Ping": {Direction: message.Out, Wrapper: out}}

		srv, err := node.New(node.Config{
			Name:       "specserver",
			Role:       node.ServerRole,
			Protocol:   node.SpecTCP,
			Host:       "127.0.0.1",
			Port:       0,
			Dispatcher: node.OpaqueDispatcher,
			Bus:        bus,
			Iface:      iface,
			Messages:   catalog,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(srv.Start()).To(Succeed())
		defer srv.Stop()

		conn, err := net.Dial("tcp", srv.BoundAddr())
		Expect(err).ToNot(HaveOccurred())
		defer conn.Close()

		Expect(srv.SendMessage("Ping")).To(Succeed())
		Expect(srv.LastMessageSent()).To(Equal("Ping"))

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		header := make([]byte, 8)
		_, err = conn.Read(header)
		Expect(err).ToNot(HaveOccurred())
		Expect(header[4:]).To(Equal([]byte{0, 0, 0, 0}))
	})

	It("drops a send on a node that has not started", func() {
		out := message.NewOut("Ping", iface, nil)
		catalog := node.Catalog{"Ping": {Direction: message.Out, Wrapper: out}}

		n, err := node.New(node.Config{
			Name:       "idle",
			Role:       node.ServerRole,
			Protocol:   node.TCP,
			Dispatcher: node.OpaqueDispatcher,
			Bus:        bus,
			Iface:      iface,
			Messages:   catalog,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(n.SendMessage("Ping")).To(Succeed())
		Expect(n.LastMessageSent()).To(BeEmpty())
	})

	It("rejects construction without a name or bus", func() {
		_, err := node.New(node.Config{Bus: bus})
		Expect(err).To(HaveOccurred())
		Expect(strings.Contains(err.Error(), "name")).To(BeTrue())

		_, err = node.New(node.Config{Name: "x"})
		Expect(err).To(HaveOccurred())
	})
})
