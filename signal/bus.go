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

// Package signal implements the process-wide publish/subscribe bus that is
// the only integration surface between node framing and application
// handler code. Emission is synchronous and ordered: it is what gives the
// control protocol's request/reply handlers deterministic reply ordering.
package signal

import (
	"fmt"
	"sync"
)

// Args is the payload handed to a handler on Emit. Node is the originating
// node name, Type is the message type string (or the literal connection
// event name), and Data carries the decoded message body.
type Args struct {
	Node string
	Type string
	Data any
}

// Reply is what a handler returns. A nil or otherwise falsy Reply is
// normalized by Emit to an empty map so callers always get one entry per
// handler.
type Reply map[string]any

// Handler reacts to one signal and optionally produces a reply.
type Handler func(a Args) Reply

// Logger is the minimal logging surface the bus needs; netlog.Logger
// satisfies it.
type Logger interface {
	Warnf(format string, args ...any)
}

// Bus is a signal name to ordered handler list table. The zero value is not
// usable; construct with New. The handler table is only mutated during
// process setup (Connect calls from Network/Control/StateMachine wiring);
// Emit only reads it, taking the read lock just long enough to copy the
// handler list and running the handlers outside the lock -- callers must
// finish Connect-ing before the first Start().
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      Logger
}

// New builds an empty Bus. log may be nil, in which case handler panics are
// swallowed silently instead of logged.
func New(log Logger) *Bus {
	return &Bus{handlers: make(map[string][]Handler), log: log}
}

// Connect appends h to the handler list for signal, in call order.
// Duplicate Connect calls for the same signal register duplicate
// invocations; de-duplication is the caller's responsibility.
func (b *Bus) Connect(signal string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[signal] = append(b.handlers[signal], h)
}

// Emit invokes every handler registered for signal, synchronously, on the
// caller's goroutine, in registration order. Each handler's reply is
// collected at the same index it was registered; a handler that returns a
// falsy reply (nil or empty map) still contributes an empty map so the
// result always has exactly one entry per handler. A handler that panics
// does not abort the fan-out: the panic is recovered, logged, and treated
// as an empty reply.
func (b *Bus) Emit(signal string, a Args) []Reply {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[signal]...)
	b.mu.RUnlock()

	if len(hs) == 0 {
		return []Reply{}
	}

	out := make([]Reply, len(hs))
	for i, h := range hs {
		out[i] = b.invoke(signal, h, a)
	}
	return out
}

func (b *Bus) invoke(signal string, h Handler, a Args) (reply Reply) {
	defer func() {
		if r := recover(); r != nil {
			if b.log != nil {
				b.log.Warnf("signal %q handler panicked: %v", signal, r)
			}
			reply = Reply{}
		}
	}()

	r := h(a)
	if len(r) == 0 {
		return Reply{}
	}
	return r
}

// HandlerCount reports how many handlers are registered for signal, mostly
// useful in tests asserting wiring did not silently no-op.
func (b *Bus) HandlerCount(signal string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[signal])
}

// ConnectionSignal returns the fixed signal name emitted exactly once per
// node transition into the connected state: "{node}_connected".
func ConnectionSignal(node string) string {
	return fmt.Sprintf("%s_connected", node)
}

// MessageSignal returns the (node, message_type) signal name used for all
// dispatch fan-out.
func MessageSignal(node, msgType string) string {
	return fmt.Sprintf("%s\x00%s", node, msgType)
}
