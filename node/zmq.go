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
	"context"
	"fmt"

	zmq4 "github.com/luxfi/zmq/v4"
)

// zmqTransport backs the four ZMQ-compatible messaging-socket protocols.
// REQ/REP run the fixed "__ping__"/"__pong__"
// handshake before the node is considered connected; PUSH/PULL are
// fire-and-forget and connected as soon as the socket is open.
type zmqTransport struct {
	protocol Protocol
	ctx      context.Context
	cancel   context.CancelFunc
	sock     zmq4.Socket
	closed   chan struct{}
}

func newZmqTransport(p Protocol) *zmqTransport {
	return &zmqTransport{protocol: p}
}

func (t *zmqTransport) start(n *Node) error {
	t.ctx, t.cancel = context.WithCancel(context.Background())
	t.closed = make(chan struct{})
	addr := fmt.Sprintf("tcp://%s:%d", n.Host, n.Port)

	switch t.protocol {
	case ZmqReq:
		t.sock = zmq4.NewReq(t.ctx)
		if err := t.sock.Dial(addr); err != nil {
			return fmt.Errorf("node: zmq req dial %s: %w", addr, err)
		}
		if err := t.handshakeReq(n); err != nil {
			return err
		}
	case ZmqRep:
		t.sock = zmq4.NewRep(t.ctx)
		if err := t.sock.Listen(addr); err != nil {
			return fmt.Errorf("node: zmq rep listen %s: %w", addr, err)
		}
		n.wg.Add(1)
		go t.repLoop(n)
	case ZmqPush:
		t.sock = zmq4.NewPush(t.ctx)
		if err := t.sock.Dial(addr); err != nil {
			return fmt.Errorf("node: zmq push dial %s: %w", addr, err)
		}
		// PUSH is send-only and has no Recv to read a pong on, so it
		// cannot run the ping/pong handshake REQ does; connected is set
		// as soon as the socket dials (see DESIGN.md).
		n.setConnected(true)
	case ZmqPull:
		t.sock = zmq4.NewPull(t.ctx)
		if err := t.sock.Listen(addr); err != nil {
			return fmt.Errorf("node: zmq pull listen %s: %w", addr, err)
		}
		n.setConnected(true)
		n.wg.Add(1)
		go t.pullLoop(n)
	default:
		return fmt.Errorf("node: unsupported zmq protocol %s", t.protocol)
	}
	return nil
}

// handshakeReq runs the CLIENT_CONNECTION_ATTEMPTS-bounded ping/pong
// exchange required before a REQ node is considered connected to its REP
// peer.
func (t *zmqTransport) handshakeReq(n *Node) error {
	for attempt := 0; attempt < ClientConnectionAttempts; attempt++ {
		if err := t.sock.Send(zmq4.NewMsg([]byte(ZmqConnectionRequest))); err != nil {
			return err
		}
		msg, err := t.sock.Recv()
		if err != nil {
			continue
		}
		if string(msg.Bytes()) == ZmqConnectionReply {
			n.setConnected(true)
			return nil
		}
	}
	return fmt.Errorf("node: zmq req/rep handshake failed after %d attempts", ClientConnectionAttempts)
}

func (t *zmqTransport) repLoop(n *Node) {
	defer n.wg.Done()
	for {
		msg, err := t.sock.Recv()
		if err != nil {
			select {
			case <-t.closed:
				return
			default:
				n.Log.Warnf("zmq rep recv: %v", err)
				return
			}
		}

		frame := msg.Bytes()
		if string(frame) == ZmqConnectionRequest {
			n.setConnected(true)
			if err := t.sock.Send(zmq4.NewMsg([]byte(ZmqConnectionReply))); err != nil {
				n.Log.Warnf("zmq rep pong: %v", err)
			}
			continue
		}

		reply, ok := n.dispatch(frame)
		if !ok {
			reply = []byte("success")
		}
		if err := t.sock.Send(zmq4.NewMsg(reply)); err != nil {
			n.Log.Warnf("zmq rep reply: %v", err)
		}
	}
}

func (t *zmqTransport) pullLoop(n *Node) {
	defer n.wg.Done()
	for {
		msg, err := t.sock.Recv()
		if err != nil {
			select {
			case <-t.closed:
				return
			default:
				n.Log.Warnf("zmq pull recv: %v", err)
				return
			}
		}
		n.dispatch(msg.Bytes())
	}
}

func (t *zmqTransport) stop(n *Node) error {
	close(t.closed)
	t.cancel()
	if t.sock != nil {
		return t.sock.Close()
	}
	return nil
}

func (t *zmqTransport) sendRaw(n *Node, data []byte) error {
	if t.protocol == ZmqReq {
		if err := t.sock.Send(zmq4.NewMsg(data)); err != nil {
			return err
		}
		msg, err := t.sock.Recv()
		if err != nil {
			return err
		}
		v, decErr := n.Iface.Deserialize(n.LastMessageSent(), msg.Bytes())
		if decErr == nil {
			n.lastResponse.Store(v)
		}
		return nil
	}
	return t.sock.Send(zmq4.NewMsg(data))
}
