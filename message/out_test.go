package message_test

import (
	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OutWrapper", func() {
	var (
		iface *wire.MapInterface
		out   *message.OutWrapper
	)

	BeforeEach(func() {
		iface = wire.NewMapInterface(wire.BigEndian)
		out = message.NewOut("Pong", iface, map[string]any{"seq": float64(0)})
	})

	It("is reset to the default payload on construction", func() {
		v, err := out.Get(nil, false, true, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(map[string]any{"seq": float64(0)}))
	})

	It("round-trips update then get on a nested path", func() {
		_, rest := message.SplitPath("Pong.seq")
		Expect(out.Update(rest, float64(42), false)).To(Succeed())

		v, err := out.Get(rest, false, false, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(float64(42)))
	})

	It("serializes the current payload when not glitching", func() {
		_, rest := message.SplitPath("Pong.seq")
		Expect(out.Update(rest, float64(7), false)).To(Succeed())

		data, err := out.Serialize()
		Expect(err).ToNot(HaveOccurred())

		name, err := iface.ClassName(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(name).To(Equal("Pong"))

		v, err := iface.Deserialize("Pong", data)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(map[string]any{"seq": float64(7)}))
	})

	It("serializes the glitch shadow once glitching, and resets clear it", func() {
		_, rest := message.SplitPath("Pong.seq")
		Expect(out.Update(rest, 99, true)).To(Succeed())
		Expect(out.IsGlitching()).To(BeTrue())

		data, err := out.Serialize()
		Expect(err).ToNot(HaveOccurred())
		v, err := iface.Deserialize("Pong", data)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(map[string]any{"seq": float64(99)}))

		out.Reset()
		Expect(out.IsGlitching()).To(BeFalse())

		v, err = out.Get(nil, false, true, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(map[string]any{"seq": float64(0)}))
	})

	It("returns NOT_FOUND style errors for an absent field", func() {
		_, rest := message.SplitPath("Pong.missing")
		_, err := out.Get(rest, false, false, false)
		Expect(err).To(HaveOccurred())
	})

	It("manages the periodic flag", func() {
		Expect(out.IsPeriodic()).To(BeFalse())
		out.SetPeriodic(true)
		Expect(out.IsPeriodic()).To(BeTrue())
	})
})
