package node

import (
	"encoding/json"

	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("dispatch", func() {
	var bus *signal.Bus
	var iface wire.Interface

	BeforeEach(func() {
		bus = signal.New(netlog.Noop())
		iface = wire.NewMapInterface(wire.BigEndian)
	})

	It("opaque dispatch always replies success", func() {
		n := &Node{Name: "n1", Dispatcher: OpaqueDispatcher, Bus: bus, Log: netlog.Noop()}
		reply, ok := n.dispatch([]byte("anything"))
		Expect(ok).To(BeTrue())
		Expect(string(reply)).To(Equal("success"))
	})

	It("spec dispatch records the IN wrapper and fans out by class name", func() {
		in := message.NewIn()
		catalog := Catalog{"Ping": {Direction: message.In, Wrapper: in}}

		var gotType string
		bus.Connect(signal.MessageSignal("n2", "Ping"), func(a signal.Args) signal.Reply {
			gotType = a.Type
			return signal.Reply{"__bytes__": []byte("ack")}
		})

		n := &Node{Name: "n2", Dispatcher: SpecDispatcher, Bus: bus, Iface: iface, Messages: catalog, Log: netlog.Noop()}

		frame, err := iface.Serialize("Ping", map[string]any{"seq": float64(1)})
		Expect(err).ToNot(HaveOccurred())

		reply, ok := n.dispatch(frame)
		Expect(ok).To(BeTrue())
		Expect(string(reply)).To(Equal("ack"))
		Expect(gotType).To(Equal("Ping"))
		Expect(in.Counter()).To(Equal(uint64(1)))
	})

	It("control dispatch round-trips a JSON envelope through the bus", func() {
		bus.Connect(signal.MessageSignal("n3", "SendMessageRequest"), func(a signal.Args) signal.Reply {
			return signal.Reply{"type": "SendMessageReply", "payload": map[string]any{"ok": true}}
		})

		n := &Node{Name: "n3", Dispatcher: ControlDispatcher, Bus: bus, Log: netlog.Noop()}

		frame, err := json.Marshal(controlEnvelope{Type: "SendMessageRequest", Payload: map[string]any{"node": "A"}})
		Expect(err).ToNot(HaveOccurred())

		reply, ok := n.dispatch(frame)
		Expect(ok).To(BeTrue())

		var env controlEnvelope
		Expect(json.Unmarshal(reply, &env)).To(Succeed())
		Expect(env.Type).To(Equal("SendMessageReply"))
		Expect(env.Payload["ok"]).To(Equal(true))
	})

	It("control dispatch reports a decode error as an ErrorReply envelope", func() {
		n := &Node{Name: "n4", Dispatcher: ControlDispatcher, Bus: bus, Log: netlog.Noop()}

		reply, ok := n.dispatch([]byte("not json"))
		Expect(ok).To(BeTrue())

		var env controlEnvelope
		Expect(json.Unmarshal(reply, &env)).To(Succeed())
		Expect(env.Type).To(Equal("ErrorReply"))
	})

	It("control dispatch returns a literal no-answer when nothing handles the type", func() {
		n := &Node{Name: "n5", Dispatcher: ControlDispatcher, Bus: bus, Log: netlog.Noop()}

		frame, err := json.Marshal(controlEnvelope{Type: "Unhandled"})
		Expect(err).ToNot(HaveOccurred())

		reply, ok := n.dispatch(frame)
		Expect(ok).To(BeTrue())
		Expect(string(reply)).To(Equal(`"No answer"`))
	})
})
