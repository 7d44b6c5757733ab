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

package message

import (
	"fmt"
	"sync"
	"time"

	"github.com/sabouaram/netsim/wire"
)

// InWrapper is the per-message runtime state for a message this node
// receives: a monotonic counter, the unix timestamp of the last receipt
// (-1 if never), and a bounded ring of the last MaxRingLength decoded
// payloads in arrival order.
type InWrapper struct {
	mu       sync.Mutex
	counter  uint64
	lastTime int64
	ring     []wire.Value
}

// NewIn builds an InWrapper with counter 0 and lastTime -1.
func NewIn() *InWrapper {
	return &InWrapper{lastTime: -1}
}

// Record appends a newly-dispatched payload: increments the counter,
// stamps lastTime, and pushes v onto the ring, evicting the oldest entry
// once the ring is at MaxRingLength.
func (w *InWrapper) Record(v wire.Value) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.counter++
	w.lastTime = time.Now().Unix()
	w.ring = append(w.ring, v)
	if len(w.ring) > MaxRingLength {
		w.ring = w.ring[len(w.ring)-MaxRingLength:]
	}
}

// Counter returns the number of dispatches recorded so far.
func (w *InWrapper) Counter() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.counter
}

// LastTime returns the unix timestamp of the last recorded dispatch, or -1
// if none has occurred yet.
func (w *InWrapper) LastTime() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastTime
}

// Last returns the n most recently recorded payloads in arrival order. It
// returns an error if n is greater than the total number of dispatches
// ever recorded (a request for more than the counter is an error), not
// merely greater than what the ring currently retains.
func (w *InWrapper) Last(n int) ([]wire.Value, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if uint64(n) > w.counter {
		return nil, fmt.Errorf("message: requested %d, only %d ever received", n, w.counter)
	}
	if n > len(w.ring) {
		n = len(w.ring)
	}
	if n <= 0 {
		return []wire.Value{}, nil
	}
	out := make([]wire.Value, n)
	copy(out, w.ring[len(w.ring)-n:])
	return out, nil
}
