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
	"encoding/json"

	"github.com/sabouaram/netsim/signal"
)

// DispatcherKind selects the per-node strategy that turns a received byte
// buffer into a signal-bus emission and a reply.
type DispatcherKind uint8

const (
	// OpaqueDispatcher logs the buffer and returns the literal bytes
	// "success"; used by plain TCP/UDP nodes.
	OpaqueDispatcher DispatcherKind = iota
	// SpecDispatcher deserializes through the node's Interface, dispatches
	// on the bus, and sends back the raw bytes of the first handler reply
	// that carries them under "__bytes__"; any further replies are not sent.
	SpecDispatcher
	// ControlDispatcher wraps a JSON {type,payload} envelope around the
	// same dispatch, used by control nodes.
	ControlDispatcher
)

// DispatcherForProtocol picks the default strategy for a non-control node
// from its wire protocol: SPEC-framed protocols decode through the
// Interface, everything else (plain TCP/UDP, the four messaging-socket
// variants) is opaque. Control nodes always override this with
// ControlDispatcher regardless of protocol.
func DispatcherForProtocol(p Protocol) DispatcherKind {
	if p.IsSpecFramed() {
		return SpecDispatcher
	}
	return OpaqueDispatcher
}

// controlEnvelope is the wire shape of the control protocol.
type controlEnvelope struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// dispatch runs n's configured strategy against one received frame,
// returning the bytes to write back (if any) and whether a reply exists.
func (n *Node) dispatch(frame []byte) ([]byte, bool) {
	switch n.Dispatcher {
	case OpaqueDispatcher:
		return n.dispatchOpaque(frame)
	case ControlDispatcher:
		return n.dispatchControl(frame)
	default:
		return n.dispatchSpec(frame)
	}
}

func (n *Node) dispatchOpaque(frame []byte) ([]byte, bool) {
	n.Log.Debugf("opaque recv %d bytes", len(frame))
	return []byte("success"), true
}

func (n *Node) dispatchSpec(frame []byte) ([]byte, bool) {
	name, err := n.Iface.ClassName(frame)
	if err != nil {
		n.Log.Warnf("spec dispatch: class name: %v", err)
		return nil, false
	}

	v, err := n.Iface.Deserialize(name, frame)
	if err != nil {
		n.Log.Warnf("spec dispatch: deserialize %s: %v", name, err)
		return nil, false
	}

	if in, err := n.Messages.In(name); err == nil {
		in.Record(v)
	}

	replies := n.Bus.Emit(signal.MessageSignal(n.Name, name), signal.Args{Node: n.Name, Type: name, Data: v})
	if len(replies) == 0 {
		return nil, false
	}

	// Only one reply is written back: the first one carrying raw bytes under
	// "__bytes__" becomes the synchronous wire reply, mirroring the control
	// dispatcher's rule that only the first reply is sent back on the wire.
	// Later replies are dropped.
	for _, r := range replies {
		if len(r) == 0 {
			continue
		}
		if data, ok := r["__bytes__"].([]byte); ok {
			return data, true
		}
	}
	return nil, false
}

func (n *Node) dispatchControl(frame []byte) ([]byte, bool) {
	var env controlEnvelope
	if err := json.Unmarshal(frame, &env); err != nil {
		n.Log.Warnf("control dispatch: decode envelope: %v", err)
		reply, _ := json.Marshal(controlEnvelope{
			Type:    "ErrorReply",
			Payload: map[string]any{"error": "DecodeError", "detail": err.Error()},
		})
		return reply, true
	}

	replies := n.Bus.Emit(signal.MessageSignal(n.Name, env.Type), signal.Args{Node: n.Name, Type: env.Type, Data: env.Payload})
	if len(replies) == 0 {
		return []byte(`"No answer"`), true
	}

	first := replies[0]
	replyType, _ := first["type"].(string)
	payload, _ := first["payload"].(map[string]any)
	data, err := json.Marshal(controlEnvelope{Type: replyType, Payload: payload})
	if err != nil {
		return []byte(`"No answer"`), true
	}
	return data, true
}
