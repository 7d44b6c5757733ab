package node

import (
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/sabouaram/netsim/wire"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// slowReader trickles bytes out one at a time, forcing readSpecFrame to
// loop through multiple io.ReadFull calls and proving frames split across
// reads reassemble correctly.
type slowReader struct {
	data []byte
	pos  int
}

func (s *slowReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	p[0] = s.data[s.pos]
	s.pos++
	return 1, nil
}

var _ = Describe("readSpecFrame", func() {
	iface := wire.NewMapInterface(wire.BigEndian)

	It("reassembles a frame delivered one byte at a time", func() {
		body := []byte(`{"type":"Ping","data":{"seq":1}}`)
		header := make([]byte, 8)
		binary.BigEndian.PutUint32(header[0:4], uint32(len(header)+len(body)))
		full := append(header, body...)

		frame, err := readSpecFrame(&slowReader{data: full}, iface)
		Expect(err).ToNot(HaveOccurred())
		Expect(frame).To(Equal(full))
	})

	It("rejects a declared length shorter than the header", func() {
		header := make([]byte, 8)
		binary.BigEndian.PutUint32(header[0:4], 4)
		_, err := readSpecFrame(bytes.NewReader(header), iface)
		Expect(err).To(HaveOccurred())
	})

	It("propagates EOF when the stream ends before the header completes", func() {
		_, err := readSpecFrame(bytes.NewReader([]byte{0, 0}), iface)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("readOpaqueFrame", func() {
	It("returns whatever one read call yields", func() {
		r := bytes.NewReader([]byte("hello"))
		frame, err := readOpaqueFrame(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(frame)).To(Equal("hello"))
	})

	It("reports EOF on an empty stream", func() {
		_, err := readOpaqueFrame(bytes.NewReader(nil))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("sendQueue", func() {
	It("delivers items in FIFO order and reports the exit sentinel", func() {
		q := newSendQueue()
		q.push([]byte("a"))
		q.push([]byte("b"))
		q.pushExit()

		first := q.pop()
		Expect(first.exit).To(BeFalse())
		Expect(string(first.data)).To(Equal("a"))

		second := q.pop()
		Expect(string(second.data)).To(Equal("b"))

		third := q.pop()
		Expect(third.exit).To(BeTrue())
	})

	It("pop blocks until an item is pushed", func() {
		q := newSendQueue()
		done := make(chan sendQueueItem, 1)
		go func() { done <- q.pop() }()

		Consistently(done, 100*time.Millisecond).ShouldNot(Receive())
		q.push([]byte("late"))
		Eventually(done, time.Second).Should(Receive())
	})
})
