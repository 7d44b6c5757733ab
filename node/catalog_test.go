package node_test

import (
	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/node"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog", func() {
	iface := wire.NewMapInterface(wire.BigEndian)

	It("resolves IN and OUT wrappers by name, unwrapping TWO_WAY entries", func() {
		in := message.NewIn()
		out := message.NewOut("Pong", iface, nil)
		two := message.NewTwoWay(out)
		two.InWrapper = in

		catalog := node.Catalog{
			"Ping": {Direction: message.In, Wrapper: in},
			"Pong": {Direction: message.Out, Wrapper: out},
			"Sync": {Direction: message.TwoWay, Wrapper: two},
		}

		gotIn, err := catalog.In("Ping")
		Expect(err).ToNot(HaveOccurred())
		Expect(gotIn).To(BeIdenticalTo(in))

		gotOut, err := catalog.Out("Pong")
		Expect(err).ToNot(HaveOccurred())
		Expect(gotOut).To(BeIdenticalTo(out))

		gotIn2, err := catalog.In("Sync")
		Expect(err).ToNot(HaveOccurred())
		Expect(gotIn2).To(BeIdenticalTo(in))

		gotOut2, err := catalog.Out("Sync")
		Expect(err).ToNot(HaveOccurred())
		Expect(gotOut2).To(BeIdenticalTo(out))
	})

	It("errors for an unknown message name", func() {
		catalog := node.Catalog{}
		_, err := catalog.In("Missing")
		Expect(err).To(HaveOccurred())
		_, err = catalog.Out("Missing")
		Expect(err).To(HaveOccurred())
	})

	It("errors when the wrapper kind does not match the requested direction", func() {
		out := message.NewOut("Pong", iface, nil)
		catalog := node.Catalog{"Pong": {Direction: message.Out, Wrapper: out}}
		_, err := catalog.In("Pong")
		Expect(err).To(HaveOccurred())
	})
})
