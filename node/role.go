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

// Package node implements the node runtime: a single network endpoint
// that owns a server or client role over one
// transport protocol, a per-node send queue, a receive loop, framing for
// length-prefixed byte protocols, periodic emission, and per-message
// counters and ring buffers delegated to the message package.
package node

import (
	"fmt"
	"strings"
)

// Role is the endpoint's position on the wire.
type Role uint8

const (
	// ServerRole accepts inbound connections.
	ServerRole Role = iota
	// ClientRole initiates outbound connections.
	ClientRole
	// BidirectionalRole is used by messaging socket protocols whose
	// client/server distinction is about queueing direction rather than who
	// dials whom (PUSH/PULL, REQ/REP). TCP and UDP transports treat it as
	// ServerRole: they only accept.
	BidirectionalRole
)

func (r Role) String() string {
	switch r {
	case ServerRole:
		return "SERVER"
	case ClientRole:
		return "CLIENT"
	case BidirectionalRole:
		return "BIDIRECTIONAL"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// ParseRole accepts the case-insensitive config spellings used in the
// network YAML.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(s) {
	case "server":
		return ServerRole, nil
	case "client":
		return ClientRole, nil
	case "bidirectional":
		return BidirectionalRole, nil
	default:
		return 0, fmt.Errorf("node: unknown role %q", s)
	}
}
