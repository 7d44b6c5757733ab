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
	"net"
	"sync"
	"time"
)

// tcpTransport backs TCP and SpecTCP. A server node accepts connections
// and tracks the most recently accepted one as the send target, matching
// the simulator's one-send-queue-per-node model. A client
// node dials, retrying up to ClientConnectionAttempts times.
type tcpTransport struct {
	listener net.Listener

	mu   sync.Mutex
	conn net.Conn

	closed chan struct{}
}

func (t *tcpTransport) start(n *Node) error {
	t.closed = make(chan struct{})

	switch n.Role {
	case ClientRole, BidirectionalRole:
		if n.Role == ClientRole {
			return t.startClient(n)
		}
		fallthrough
	case ServerRole:
		return t.startServer(n)
	default:
		return fmt.Errorf("node: unsupported role %s for tcp transport", n.Role)
	}
}

func (t *tcpTransport) startServer(n *Node) error {
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	t.listener = ln

	n.wg.Add(1)
	go t.acceptLoop(n)
	return nil
}

func (t *tcpTransport) startClient(n *Node) error {
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)

	var conn net.Conn
	var err error
	for attempt := 0; attempt < ClientConnectionAttempts; attempt++ {
		conn, err = net.Dial("tcp", addr)
		if err == nil {
			break
		}
		time.Sleep(ClientConnectionRetryInterval)
	}
	if err != nil {
		return fmt.Errorf("node: tcp client connect after %d attempts: %w", ClientConnectionAttempts, err)
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
	n.setConnected(true)

	n.wg.Add(1)
	go t.receiveLoop(n, conn)
	return nil
}

func (t *tcpTransport) acceptLoop(n *Node) {
	defer n.wg.Done()
	for {
		conn, err := t.listener.Accept()
		if err != nil {
			select {
			case <-t.closed:
				return
			default:
				n.Log.Warnf("tcp accept: %v", err)
				return
			}
		}

		t.mu.Lock()
		t.conn = conn
		t.mu.Unlock()
		n.setConnected(true)

		n.wg.Add(1)
		go t.receiveLoop(n, conn)
	}
}

func (t *tcpTransport) receiveLoop(n *Node, conn net.Conn) {
	defer n.wg.Done()
	for {
		conn.SetReadDeadline(time.Now().Add(ServerSocketTimeout))

		var frame []byte
		var err error
		if n.Protocol.IsSpecFramed() {
			frame, err = readSpecFrame(conn, n.Iface)
		} else {
			frame, err = readOpaqueFrame(conn)
		}

		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				select {
				case <-t.closed:
					return
				default:
					continue
				}
			}
			select {
			case <-t.closed:
			default:
				n.Log.Warnf("tcp receive: %v", err)
			}
			return
		}
		if len(frame) == 0 {
			continue
		}

		if reply, ok := n.dispatch(frame); ok {
			if _, err := conn.Write(reply); err != nil {
				n.Log.Warnf("tcp reply write: %v", err)
			}
		}
	}
}

func (t *tcpTransport) stop(n *Node) error {
	close(t.closed)
	if t.listener != nil {
		t.listener.Close()
	}
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	return nil
}

func (t *tcpTransport) sendRaw(n *Node, data []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("node: tcp send with no active connection")
	}
	_, err := conn.Write(data)
	return err
}
