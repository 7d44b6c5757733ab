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

// udpTransport backs UDP and SpecUDP. UDP has no connection handshake, so
// a server node is connected as soon as its socket is bound; it learns its
// peer's address from the first datagram received and targets replies and
// later sends at that address.
type udpTransport struct {
	conn *net.UDPConn

	mu   sync.Mutex
	peer *net.UDPAddr

	closed chan struct{}
}

func (t *udpTransport) start(n *Node) error {
	t.closed = make(chan struct{})

	switch n.Role {
	case ServerRole, BidirectionalRole:
		addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", n.Host, n.Port))
		if err != nil {
			return err
		}
		conn, err := net.ListenUDP("udp", addr)
		if err != nil {
			return err
		}
		t.conn = conn
		n.setConnected(true)
	case ClientRole:
		addr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", n.Host, n.Port))
		if err != nil {
			return err
		}
		conn, err := net.DialUDP("udp", nil, addr)
		if err != nil {
			return err
		}
		t.conn = conn
		t.mu.Lock()
		t.peer = addr
		t.mu.Unlock()
		n.setConnected(true)
	default:
		return fmt.Errorf("node: unsupported role %s for udp transport", n.Role)
	}

	n.wg.Add(1)
	go t.receiveLoop(n)
	return nil
}

func (t *udpTransport) receiveLoop(n *Node) {
	defer n.wg.Done()
	buf := make([]byte, opaqueBufferSize)

	for {
		t.conn.SetReadDeadline(time.Now().Add(ServerSocketTimeout))
		nr, addr, err := t.conn.ReadFromUDP(buf)
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
				n.Log.Warnf("udp receive: %v", err)
			}
			return
		}
		if nr == 0 {
			continue
		}

		if n.Role != ClientRole {
			t.mu.Lock()
			t.peer = addr
			t.mu.Unlock()
			n.setConnected(true)
		}

		frame := make([]byte, nr)
		copy(frame, buf[:nr])

		if reply, ok := n.dispatch(frame); ok {
			if _, err := t.conn.WriteToUDP(reply, addr); err != nil {
				n.Log.Warnf("udp reply write: %v", err)
			}
		}
	}
}

func (t *udpTransport) stop(n *Node) error {
	close(t.closed)
	if t.conn != nil {
		return t.conn.Close()
	}
	return nil
}

func (t *udpTransport) sendRaw(n *Node, data []byte) error {
	t.mu.Lock()
	peer := t.peer
	t.mu.Unlock()

	if n.Role == ClientRole {
		_, err := t.conn.Write(data)
		return err
	}
	if peer == nil {
		return fmt.Errorf("node: udp send with no known peer yet")
	}
	_, err := t.conn.WriteToUDP(data, peer)
	return err
}
