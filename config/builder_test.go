package config_test

import (
	"github.com/sabouaram/netsim/config"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/node"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BuildNodes", func() {
	var bus *signal.Bus
	var iface wire.Interface

	BeforeEach(func() {
		bus = signal.New(netlog.Noop())
		iface = wire.NewMapInterface(wire.BigEndian)
	})

	It("builds a node's catalog from its inline message specs", func() {
		spec := config.NetworkSpec{
			"A": config.NodeSpec{
				Protocol: "spec_tcp",
				Role:     "server",
				Host:     "127.0.0.1",
				Messages: map[string]config.MessageSpec{
					"Ping": {Direction: "in"},
					"Pong": {Direction: "out", Periodic: true, Interval: 0.1},
				},
			},
		}
		defaults := map[string]map[string]any{"Pong": {"seq": float64(0)}}

		built, err := config.BuildNodes(spec, defaults, nil, iface, bus, netlog.Noop())
		Expect(err).ToNot(HaveOccurred())
		Expect(built.Nodes).To(HaveLen(1))
		Expect(built.ControlNode).To(BeEmpty())
		Expect(built.AutoPeriodic).To(ConsistOf(config.AutoPeriodic{Node: "A", Message: "Pong"}))

		a := built.Nodes[0]
		_, err = a.Messages.In("Ping")
		Expect(err).ToNot(HaveOccurred())
		out, err := a.Messages.Out("Pong")
		Expect(err).ToNot(HaveOccurred())
		v, err := out.Get(nil, false, true, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(map[string]any{"seq": float64(0)}))
	})

	It("skips the inline catalog for a control node and tracks its name", func() {
		spec := config.NetworkSpec{
			"ctl": config.NodeSpec{
				Protocol: "zmq_rep",
				Role:     "bidirectional",
				Control:  true,
			},
		}
		built, err := config.BuildNodes(spec, nil, nil, iface, bus, netlog.Noop())
		Expect(err).ToNot(HaveOccurred())
		Expect(built.ControlNode).To(Equal("ctl"))
		Expect(built.Nodes[0].Dispatcher).To(Equal(node.ControlDispatcher))
		Expect(built.Nodes[0].Messages).To(BeEmpty())
	})

	It("rejects more than one control node", func() {
		spec := config.NetworkSpec{
			"ctl1": config.NodeSpec{Protocol: "zmq_rep", Role: "bidirectional", Control: true},
			"ctl2": config.NodeSpec{Protocol: "zmq_rep", Role: "bidirectional", Control: true},
		}
		_, err := config.BuildNodes(spec, nil, nil, iface, bus, netlog.Noop())
		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown protocol", func() {
		spec := config.NetworkSpec{
			"A": config.NodeSpec{Protocol: "carrier_pigeon", Role: "server"},
		}
		_, err := config.BuildNodes(spec, nil, nil, iface, bus, netlog.Noop())
		Expect(err).To(HaveOccurred())
	})
})
