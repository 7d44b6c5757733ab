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

package config

import (
	"fmt"
	"time"

	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/node"
	"github.com/sabouaram/netsim/signal"
	"github.com/sabouaram/netsim/wire"
)

// AutoPeriodic names one (node, message) pair whose config marked
// periodic=true, for the caller to start once the network is running.
type AutoPeriodic struct {
	Node    string
	Message string
}

// Built is the outcome of turning a NetworkSpec into live runtime objects:
// every constructed node, the name of the control node (if any), and the
// periodic emissions the config wants started automatically.
type Built struct {
	Nodes        []*node.Node
	ControlNode  string
	AutoPeriodic []AutoPeriodic
}

// BuildNodes constructs one node.Node per entry of spec, wiring each
// message's wrapper from defaults/glitches by message name. A control
// node (NodeSpec.Control) gets an empty catalog and ControlDispatcher
// regardless of its protocol; control.RegisterHandlers attaches its
// behavior separately.
func BuildNodes(spec NetworkSpec, defaults, glitches map[string]map[string]any, iface wire.Interface, bus *signal.Bus, log netlog.Logger) (*Built, error) {
	built := &Built{}

	for name, ns := range spec {
		role, err := node.ParseRole(ns.Role)
		if err != nil {
			return nil, fmt.Errorf("config: node %q: %w", name, err)
		}
		protocol, err := node.ParseProtocol(ns.Protocol)
		if err != nil {
			return nil, fmt.Errorf("config: node %q: %w", name, err)
		}

		catalog := node.Catalog{}
		dispatcher := node.DispatcherForProtocol(protocol)
		if ns.Control {
			dispatcher = node.ControlDispatcher
			if built.ControlNode != "" {
				return nil, fmt.Errorf("config: more than one control node: %q and %q", built.ControlNode, name)
			}
			built.ControlNode = name
		} else {
			for msgName, ms := range ns.Messages {
				entry, err := buildCatalogEntry(msgName, ms, iface, defaults, glitches)
				if err != nil {
					return nil, fmt.Errorf("config: node %q message %q: %w", name, msgName, err)
				}
				catalog[msgName] = entry
			}
		}

		n, err := node.New(node.Config{
			Name:       name,
			Role:       role,
			Protocol:   protocol,
			Host:       ns.Host,
			Port:       ns.Port,
			Messages:   catalog,
			Iface:      iface,
			Dispatcher: dispatcher,
			Bus:        bus,
			Log:        log,
		})
		if err != nil {
			return nil, fmt.Errorf("config: node %q: %w", name, err)
		}
		built.Nodes = append(built.Nodes, n)

		auto, err := applyPeriodicFlags(n, ns.Messages)
		if err != nil {
			return nil, fmt.Errorf("config: node %q: %w", name, err)
		}
		built.AutoPeriodic = append(built.AutoPeriodic, auto...)
	}

	return built, nil
}

func buildCatalogEntry(msgName string, ms MessageSpec, iface wire.Interface, defaults, glitches map[string]map[string]any) (node.CatalogEntry, error) {
	direction, err := message.ParseDirection(ms.Direction)
	if err != nil {
		return node.CatalogEntry{}, err
	}

	switch direction {
	case message.In:
		return node.CatalogEntry{Direction: direction, Wrapper: message.NewIn()}, nil
	case message.Out:
		out := message.NewOut(msgName, iface, defaults[msgName])
		if err := seedGlitch(out, msgName, glitches); err != nil {
			return node.CatalogEntry{}, err
		}
		return node.CatalogEntry{Direction: direction, Wrapper: out}, nil
	default:
		out := message.NewOut(msgName, iface, defaults[msgName])
		if err := seedGlitch(out, msgName, glitches); err != nil {
			return node.CatalogEntry{}, err
		}
		return node.CatalogEntry{Direction: direction, Wrapper: message.NewTwoWay(out)}, nil
	}
}

func seedGlitch(out *message.OutWrapper, msgName string, glitches map[string]map[string]any) error {
	shadow, ok := glitches[msgName]
	if !ok {
		return nil
	}
	return out.Update(nil, shadow, true)
}

// applyPeriodicFlags sets each message's configured interval and collects
// the ones flagged periodic=true for the caller to start once the network
// is running -- the periodic ticker must not fire before the node's
// sender loop exists, so StartPeriodic itself is deferred to the caller.
func applyPeriodicFlags(n *node.Node, messages map[string]MessageSpec) ([]AutoPeriodic, error) {
	var auto []AutoPeriodic
	for msgName, ms := range messages {
		if ms.Interval > 0 {
			out, err := n.Messages.Out(msgName)
			if err != nil {
				return nil, err
			}
			out.SetInterval(time.Duration(ms.Interval * float64(time.Second)))
		}
		if ms.Periodic {
			auto = append(auto, AutoPeriodic{Node: n.Name, Message: msgName})
		}
	}
	return auto, nil
}
