package message_test

import (
	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("InWrapper", func() {
	It("starts with counter 0 and lastTime -1", func() {
		in := message.NewIn()
		Expect(in.Counter()).To(Equal(uint64(0)))
		Expect(in.LastTime()).To(Equal(int64(-1)))
	})

	It("increments the counter and records payloads in arrival order", func() {
		in := message.NewIn()
		in.Record(map[string]any{"seq": 1})
		in.Record(map[string]any{"seq": 2})
		in.Record(map[string]any{"seq": 3})

		Expect(in.Counter()).To(Equal(uint64(3)))
		Expect(in.LastTime()).To(BeNumerically(">", int64(0)))

		last, err := in.Last(2)
		Expect(err).ToNot(HaveOccurred())
		Expect(last).To(Equal([]wire.Value{
			map[string]any{"seq": 2},
			map[string]any{"seq": 3},
		}))
	})

	It("keeps the ring bounded at MaxRingLength", func() {
		in := message.NewIn()
		for i := 0; i < message.MaxRingLength+5; i++ {
			in.Record(i)
		}
		last, err := in.Last(message.MaxRingLength)
		Expect(err).ToNot(HaveOccurred())
		Expect(last).To(HaveLen(message.MaxRingLength))
		Expect(last[message.MaxRingLength-1]).To(Equal(message.MaxRingLength + 4))
	})

	It("errors when asked for more than were ever received", func() {
		in := message.NewIn()
		in.Record(1)
		_, err := in.Last(5)
		Expect(err).To(HaveOccurred())
	})
})
