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

package commands

import (
	"fmt"

	"github.com/sabouaram/netsim/config"
	"github.com/sabouaram/netsim/control"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/network"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/statemachine"
	"github.com/sabouaram/netsim/wire"
)

// runtime is everything built from a Config before a network can be
// started: the registered controller, the state machine manager and, if
// the topology declares one, the control node's name.
type runtime struct {
	ctl   *network.Controller
	sm    *statemachine.Manager
	built *config.Built
}

// build loads every configured file and assembles the node network and
// state machine manager, but starts nothing. Both serve and validate
// share this path: validate stops here, serve goes on to Start.
func build(cfg Config, log netlog.Logger) (*runtime, error) {
	netSpec, err := config.LoadNetwork(cfg.Network)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}

	defaults, err := config.LoadPayloads(cfg.Defaults)
	if err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	glitches, err := config.LoadPayloads(cfg.Glitches)
	if err != nil {
		return nil, fmt.Errorf("load glitches: %w", err)
	}

	bus := signal.New(log.Named("signal"))
	iface := wire.NewMapInterface(wire.BigEndian)

	built, err := config.BuildNodes(netSpec, defaults, glitches, iface, bus, log)
	if err != nil {
		return nil, fmt.Errorf("build nodes: %w", err)
	}

	ctl := network.New(bus, log.Named("network"))
	for _, n := range built.Nodes {
		if err := ctl.Register(n); err != nil {
			return nil, fmt.Errorf("register %s: %w", n.Name, err)
		}
	}

	sm := statemachine.NewManager(log.Named("statemachine"))

	if built.ControlNode != "" {
		descriptor, err := config.LoadControlDescriptor(cfg.Descriptor)
		if err != nil {
			return nil, fmt.Errorf("load descriptor: %w", err)
		}
		control.RegisterHandlers(bus, ctl, sm, built.ControlNode, descriptor, log.Named("control"))
	}

	return &runtime{ctl: ctl, sm: sm, built: built}, nil
}
