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
	"fmt"
	"strings"
	"time"
)

// Protocol selects the transport strategy backing a Node. A tagged enum
// plus dispatch table replaces per-variant subclassing: concrete behavior
// lives in the transport implementations selected at construction time
// in New.
type Protocol uint8

const (
	// TCP is opaque-framed TCP (one recv call per message, up to 4096
	// bytes).
	TCP Protocol = iota
	// UDP is opaque-framed UDP.
	UDP
	// SpecTCP is length-prefixed TCP framing.
	SpecTCP
	// SpecUDP is length-prefixed UDP framing.
	SpecUDP
	// ZmqReq is a messaging-socket REQ client.
	ZmqReq
	// ZmqRep is a messaging-socket REP server.
	ZmqRep
	// ZmqPush is a messaging-socket PUSH client.
	ZmqPush
	// ZmqPull is a messaging-socket PULL server.
	ZmqPull
)

func (p Protocol) String() string {
	switch p {
	case TCP:
		return "TCP"
	case UDP:
		return "UDP"
	case SpecTCP:
		return "SPEC_TCP"
	case SpecUDP:
		return "SPEC_UDP"
	case ZmqReq:
		return "ZMQ_REQ"
	case ZmqRep:
		return "ZMQ_REP"
	case ZmqPush:
		return "ZMQ_PUSH"
	case ZmqPull:
		return "ZMQ_PULL"
	default:
		return fmt.Sprintf("Protocol(%d)", uint8(p))
	}
}

// ParseProtocol accepts the case-insensitive config spellings used in the
// network YAML.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "tcp":
		return TCP, nil
	case "udp":
		return UDP, nil
	case "spec_tcp":
		return SpecTCP, nil
	case "spec_udp":
		return SpecUDP, nil
	case "zmq_req":
		return ZmqReq, nil
	case "zmq_rep":
		return ZmqRep, nil
	case "zmq_push":
		return ZmqPush, nil
	case "zmq_pull":
		return ZmqPull, nil
	default:
		return 0, fmt.Errorf("node: unknown protocol %q", s)
	}
}

// IsMessagingSocket reports whether p is one of the four ZMQ_* protocols.
func (p Protocol) IsMessagingSocket() bool {
	switch p {
	case ZmqReq, ZmqRep, ZmqPush, ZmqPull:
		return true
	default:
		return false
	}
}

// IsSpecFramed reports whether p uses the length-prefixed SPEC framing.
func (p Protocol) IsSpecFramed() bool {
	return p == SpecTCP || p == SpecUDP
}

// Observable protocol constants governing the control-plane handshake and
// connection retry behavior.
const (
	ZmqConnectionRequest = "__ping__"
	ZmqConnectionReply   = "__pong__"

	MaxLengthInMessagesDeque = 10

	ClientConnectionAttempts = 50

	// ClientConnectionRetryInterval is the spacing between the client's
	// connect attempts: 50 attempts at 1-second spacing.
	ClientConnectionRetryInterval = time.Second

	ServerSocketTimeout = 500 * time.Millisecond
)
