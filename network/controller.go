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

// Package network implements the Network Controller: the process-wide
// registry that owns every node built from configuration, maintains the
// message-name<->node reverse indexes, and exposes the aggregate
// operations the control protocol drives.
package network

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sabouaram/netsim/errtax"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/node"
	"github.com/sabouaram/netsim/signal"
)

// Controller is the singleton node registry. The zero value is not usable;
// construct with New.
type Controller struct {
	mu          sync.RWMutex
	nodes       map[string]*node.Node
	messagesRef map[string][]string // message name -> node names
	nodeRef     map[string][]string // node name -> message names

	bus *signal.Bus
	log netlog.Logger
}

// New builds an empty Controller. Nodes are added with Register before
// Start.
func New(bus *signal.Bus, log netlog.Logger) *Controller {
	if log == nil {
		log = netlog.Noop()
	}
	return &Controller{
		nodes:       make(map[string]*node.Node),
		messagesRef: make(map[string][]string),
		nodeRef:     make(map[string][]string),
		bus:         bus,
		log:         log.Named("network"),
	}
}

// Register adds n to the registry and indexes every message in its
// catalog. A duplicate node name is a fatal configuration error, reported
// as a plain error for the caller (typically config loading) to surface
// and abort on.
func (c *Controller) Register(n *node.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.nodes[n.Name]; dup {
		return fmt.Errorf("network: duplicate node name %q", n.Name)
	}
	c.nodes[n.Name] = n

	var names []string
	for msg := range n.Messages {
		names = append(names, msg)
		c.messagesRef[msg] = append(c.messagesRef[msg], n.Name)
	}
	c.nodeRef[n.Name] = names
	return nil
}

// Node returns the registered node by name.
func (c *Controller) Node(name string) (*node.Node, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.nodes[name]
	if !ok {
		return nil, nodeNotFoundError(name)
	}
	return n, nil
}

// Nodes returns every registered node name, for Start/Stop/iteration.
func (c *Controller) Nodes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.nodes))
	for name := range c.nodes {
		names = append(names, name)
	}
	return names
}

// resolveNode picks the target node for a message operation: the explicit
// nodeName if given, else the unique owner of msgName. An ambiguous
// message name (configured on more than one node) is a configuration
// error, not an operational one, so it panics rather than returning an
// error (unlike Register, whose duplicate-name check returns one), and
// panics with an *errtax.Error so a recovering caller (control.recoverReply)
// still reports it under the MESSAGE_NOT_UNIQUE taxonomy name.
func (c *Controller) resolveNode(msgName, nodeName string) (*node.Node, error) {
	if nodeName != "" {
		return c.Node(nodeName)
	}

	c.mu.RLock()
	owners := c.messagesRef[msgName]
	c.mu.RUnlock()

	switch len(owners) {
	case 0:
		return nil, messageNotFoundError(msgName)
	case 1:
		return c.Node(owners[0])
	default:
		panic(errtax.New(errtax.MessageNotUnique, fmt.Sprintf("message %q is configured on more than one node (%s)", msgName, strings.Join(owners, ", "))))
	}
}

// SendMessage resolves the owning node for messageName (or uses nodeName
// if given) and sends it.
func (c *Controller) SendMessage(messageName, nodeName string) error {
	n, err := c.resolveNode(messageName, nodeName)
	if err != nil {
		return err
	}
	return n.SendMessage(messageName)
}

// GetConnectionResult reports whether every applicable node is connected.
// When excludeControl is true, nodes whose name contains "zmq" are not
// considered.
func (c *Controller) GetConnectionResult(excludeControl bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, n := range c.nodes {
		if excludeControl && strings.Contains(strings.ToLower(name), "zmq") {
			continue
		}
		if !n.IsConnected() {
			return false
		}
	}
	return true
}

// Start starts every registered node. The first failure is returned but
// every node is still attempted, so a caller sees the full set of startup
// errors by retrying Start after fixing configuration.
func (c *Controller) Start() error {
	c.mu.RLock()
	nodes := make([]*node.Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		nodes = append(nodes, n)
	}
	c.mu.RUnlock()

	var firstErr error
	for _, n := range nodes {
		if err := n.Start(); err != nil {
			c.log.Errorf("start %s: %v", n.Name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Stop stops every registered node.
func (c *Controller) Stop() error {
	c.mu.RLock()
	nodes := make([]*node.Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		nodes = append(nodes, n)
	}
	c.mu.RUnlock()

	var firstErr error
	for _, n := range nodes {
		if err := n.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
