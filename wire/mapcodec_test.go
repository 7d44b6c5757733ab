package wire_test

import (
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MapInterface", func() {
	var iface *wire.MapInterface

	BeforeEach(func() {
		iface = wire.NewMapInterface(wire.BigEndian)
	})

	It("round-trips serialize/deserialize", func() {
		data, err := iface.Serialize("Ping", map[string]any{"seq": float64(42)})
		Expect(err).ToNot(HaveOccurred())

		name, err := iface.ClassName(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(name).To(Equal("Ping"))

		v, err := iface.Deserialize("Ping", data)
		Expect(err).ToNot(HaveOccurred())
		Expect(v).To(Equal(map[string]any{"seq": float64(42)}))
	})

	It("reports the fixed 8 byte big-endian header layout", func() {
		start, end := iface.MessageLengthStartEnd()
		Expect(start).To(Equal(0))
		Expect(end).To(Equal(8))
		Expect(iface.ByteOrder()).To(Equal(wire.BigEndian))
	})

	It("walks and mutates nested fields", func() {
		fa := iface.Fields()
		v, err := iface.Decode("Pong", map[string]any{"seq": float64(0), "tags": []any{"a", "b"}})
		Expect(err).ToNot(HaveOccurred())

		updated, err := fa.Set(v, wire.Segment{Name: "seq"}, float64(99))
		Expect(err).ToNot(HaveOccurred())

		got, err := fa.Get(updated, wire.Segment{Name: "seq"})
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(float64(99)))

		tags, err := fa.Get(updated, wire.Segment{Name: "tags"})
		Expect(err).ToNot(HaveOccurred())
		Expect(fa.Len(tags)).To(Equal(2))
	})

	It("returns an error for an out of range index", func() {
		fa := iface.Fields()
		_, err := fa.Get([]any{"only"}, wire.Segment{IsIndex: true, Index: 5})
		Expect(err).To(HaveOccurred())
	})
})
