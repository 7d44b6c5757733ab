/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package node

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sabouaram/netsim/wire"
)

// opaqueBufferSize is the fixed read buffer for plain TCP/UDP nodes:
// one read yields one frame, whatever fits.
const opaqueBufferSize = 4096

// readOpaqueFrame reads up to one opaqueBufferSize chunk. A zero-length
// read (clean EOF on the first read) is reported via err=io.EOF.
func readOpaqueFrame(r io.Reader) ([]byte, error) {
	buf := make([]byte, opaqueBufferSize)
	n, err := r.Read(buf)
	if n == 0 && err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// readSpecFrame reassembles one length-prefixed frame: the header occupies
// bytes [0, end), and the unsigned integer
// at [start, end) gives the TOTAL frame length (header included). Partial
// reads are looped until the full frame has arrived, so a frame split
// across TCP segments reassembles correctly.
func readSpecFrame(r io.Reader, iface wire.Interface) ([]byte, error) {
	start, end := iface.MessageLengthStartEnd()
	if end <= start || end <= 0 {
		return nil, fmt.Errorf("node: invalid length header bounds [%d,%d)", start, end)
	}

	header := make([]byte, end)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	total := decodeLength(header[start:end], iface.ByteOrder())
	if int(total) < end {
		return nil, fmt.Errorf("node: declared length %d shorter than header %d", total, end)
	}

	frame := make([]byte, total)
	copy(frame, header)
	if _, err := io.ReadFull(r, frame[end:]); err != nil {
		return nil, err
	}
	return frame, nil
}

func decodeLength(b []byte, order wire.ByteOrder) uint64 {
	padded := make([]byte, 8)
	if order == wire.LittleEndian {
		copy(padded, b)
		return binary.LittleEndian.Uint64(padded)
	}
	copy(padded[8-len(b):], b)
	return binary.BigEndian.Uint64(padded)
}
