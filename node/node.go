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
	"sync"
	"sync/atomic"

	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/wire"
)

// transport is the per-protocol strategy a Node delegates socket work to.
// tcpTransport, udpTransport and the four zmqTransport variants implement
// it; Node itself only knows the common contract.
type transport interface {
	// start binds/connects as role dictates and spawns whatever receiver
	// goroutines the protocol needs, registering them on n.wg.
	start(n *Node) error
	// stop closes sockets and unblocks any goroutine started by start.
	stop(n *Node) error
	// sendRaw writes one already-serialized frame out. Called from the
	// node's single sender task, so never concurrently with itself.
	sendRaw(n *Node, data []byte) error
}

// Node is one network endpoint: a name, role, protocol, message catalog,
// and the runtime state that backs it (sender queue, receiver loop(s),
// periodic scheduler, connection flag).
type Node struct {
	Name     string
	Role     Role
	Protocol Protocol
	Host     string
	Port     int

	Messages   Catalog
	Iface      wire.Interface
	Dispatcher DispatcherKind

	Bus *signal.Bus
	Log netlog.Logger

	running   atomic.Bool
	connected atomic.Bool

	lastMessageSent atomic.Value // string
	lastResponse    atomic.Value // wire.Value

	queue *sendQueue
	tr    transport

	periodicMu sync.Mutex
	periodic   map[string]chan struct{}

	wg sync.WaitGroup
}

// Config is the construction-time description of a Node, as produced by
// config.BuildNodes for one NodeSpec entry.
type Config struct {
	Name       string
	Role       Role
	Protocol   Protocol
	Host       string
	Port       int
	Messages   Catalog
	Iface      wire.Interface
	Dispatcher DispatcherKind
	Bus        *signal.Bus
	Log        netlog.Logger
}

// New builds a Node for cfg, selecting the transport implementation for
// cfg.Protocol from the dispatch table in newTransport.
func New(cfg Config) (*Node, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("node: name is required")
	}
	if cfg.Bus == nil {
		return nil, fmt.Errorf("node: signal bus is required")
	}
	if cfg.Log == nil {
		cfg.Log = netlog.Noop()
	}

	n := &Node{
		Name:       cfg.Name,
		Role:       cfg.Role,
		Protocol:   cfg.Protocol,
		Host:       cfg.Host,
		Port:       cfg.Port,
		Messages:   cfg.Messages,
		Iface:      cfg.Iface,
		Dispatcher: cfg.Dispatcher,
		Bus:        cfg.Bus,
		Log:        cfg.Log.Named(cfg.Name),
		queue:      newSendQueue(),
		periodic:   make(map[string]chan struct{}),
	}
	n.lastMessageSent.Store("")

	tr, err := newTransport(cfg.Protocol)
	if err != nil {
		return nil, err
	}
	n.tr = tr
	return n, nil
}

// IsRunning reports whether Start has been called without a matching Stop.
func (n *Node) IsRunning() bool { return n.running.Load() }

// IsConnected reports the protocol-specific connection semantics: whether
// the underlying transport currently has a live peer.
func (n *Node) IsConnected() bool { return n.connected.Load() }

// setConnected transitions the connection flag to true at most once per
// transition, emitting "{name}_connected" on the bus exactly once per
// transition into the connected state.
func (n *Node) setConnected(v bool) {
	if !v {
		n.connected.Store(false)
		return
	}
	if n.connected.CompareAndSwap(false, true) {
		n.Bus.Emit(signal.ConnectionSignal(n.Name), signal.Args{Node: n.Name})
	}
}

// Start is idempotent: it transitions running false->true, spawns worker
// tasks, and binds/connects as Role dictates.
func (n *Node) Start() error {
	if !n.running.CompareAndSwap(false, true) {
		return nil
	}

	if err := n.tr.start(n); err != nil {
		n.running.Store(false)
		return err
	}

	n.wg.Add(1)
	go n.senderLoop()

	n.Log.Infof("node started (%s/%s %s:%d)", n.Role, n.Protocol, n.Host, n.Port)
	return nil
}

// Stop is idempotent: it deactivates every periodic message, enqueues the
// EXIT sentinel, joins workers, and closes the socket.
func (n *Node) Stop() error {
	if !n.running.CompareAndSwap(true, false) {
		return nil
	}

	n.periodicMu.Lock()
	for name, stop := range n.periodic {
		close(stop)
		delete(n.periodic, name)
		if out, err := n.Messages.Out(name); err == nil {
			out.SetPeriodic(false)
		}
	}
	n.periodicMu.Unlock()

	n.queue.pushExit()
	err := n.tr.stop(n)
	n.wg.Wait()

	n.connected.Store(false)
	n.Log.Infof("node stopped")
	return err
}

// senderLoop is the single per-node sender task: it pulls frames from the
// unbounded FIFO queue in enqueue order and writes them out, until the
// EXIT sentinel arrives.
func (n *Node) senderLoop() {
	defer n.wg.Done()
	for {
		item := n.queue.pop()
		if item.exit {
			return
		}
		if err := n.tr.sendRaw(n, item.data); err != nil {
			n.Log.Warnf("send failed: %v", err)
		}
	}
}

// SendMessage serializes the named OUT message's current payload (or its
// glitch shadow, if glitching) and enqueues it. If the node is not
// running, the call is silently dropped with a logged warning.
func (n *Node) SendMessage(name string) error {
	if !n.IsRunning() {
		n.Log.Warnf("send_message(%s) dropped: node not running", name)
		return nil
	}

	out, err := n.Messages.Out(name)
	if err != nil {
		return err
	}

	data, err := out.Serialize()
	if err != nil {
		return err
	}

	n.lastMessageSent.Store(name)
	n.queue.push(data)
	return nil
}

// SendBuffer enqueues raw bytes directly, bypassing the message catalog.
func (n *Node) SendBuffer(data []byte) {
	if !n.IsRunning() {
		n.Log.Warnf("send_buffer dropped: node not running")
		return
	}
	n.queue.push(data)
}

// LastMessageSent returns the name of the most recently enqueued OUT
// message, or "" if none has been sent yet.
func (n *Node) LastMessageSent() string {
	v, _ := n.lastMessageSent.Load().(string)
	return v
}

// LastResponse returns the most recently received REQ-client reply
// payload, used by the REQ protocol's synchronous request/reply cycle.
func (n *Node) LastResponse() wire.Value {
	v, _ := n.lastResponse.Load().(wire.Value)
	return v
}

// BoundAddr returns the actual listening address of a server-role TCP or
// UDP node, useful when Port was 0 and the OS picked an ephemeral one. For
// a UDP client it returns the local address of the dialed socket. It
// returns "" for TCP client-role or messaging-socket nodes.
func (n *Node) BoundAddr() string {
	switch tr := n.tr.(type) {
	case *tcpTransport:
		if tr.listener != nil {
			return tr.listener.Addr().String()
		}
	case *udpTransport:
		if tr.conn != nil {
			return tr.conn.LocalAddr().String()
		}
	}
	return ""
}

func newTransport(p Protocol) (transport, error) {
	switch p {
	case TCP, SpecTCP:
		return &tcpTransport{}, nil
	case UDP, SpecUDP:
		return &udpTransport{}, nil
	case ZmqReq, ZmqRep, ZmqPush, ZmqPull:
		return newZmqTransport(p), nil
	default:
		return nil, fmt.Errorf("node: unsupported protocol %s", p)
	}
}
