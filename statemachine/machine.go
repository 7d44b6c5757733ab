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

package statemachine

import (
	"fmt"
	"sync"
	"time"

	"github.com/sabouaram/netsim/netlog"
)

// Transition maps the machine's current state name to its next state name.
// A transition returning "" leaves the state unchanged.
type Transition func(model map[string]any, state string) (next string)

// Machine is one named state machine: a property bag ("model"), a current
// state name, a table of triggered transitions keyed by event name, and an
// optional periodic tick that re-evaluates transitions on an interval.
type Machine struct {
	Name string

	mu    sync.Mutex
	state string
	model map[string]any

	transitions map[string]Transition
	onTick      Transition
	interval    time.Duration

	log netlog.Logger

	stop chan struct{}
	done chan struct{}
}

// NewMachine builds a Machine starting in initialState with an empty model.
func NewMachine(name, initialState string, log netlog.Logger) *Machine {
	if log == nil {
		log = netlog.Noop()
	}
	return &Machine{
		Name:        name,
		state:       initialState,
		model:       make(map[string]any),
		transitions: make(map[string]Transition),
		log:         log.Named(name),
	}
}

// State returns the machine's current state name.
func (m *Machine) State() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// SetProperty sets a named property on the model, then runs the machine's
// triggered transitions as if event == property (property setters can fire
// transitions).
func (m *Machine) SetProperty(property string, value any) error {
	m.mu.Lock()
	m.model[property] = value
	cur := m.state
	m.mu.Unlock()

	m.fire(property, cur)
	return nil
}

// OnTransition registers a triggered transition for event.
func (m *Machine) OnTransition(event string, t Transition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[event] = t
}

// OnTick registers the periodic transition evaluator and its interval.
func (m *Machine) OnTick(interval time.Duration, t Transition) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = interval
	m.onTick = t
}

func (m *Machine) fire(event, state string) {
	m.mu.Lock()
	t, ok := m.transitions[event]
	model := m.model
	m.mu.Unlock()
	if !ok {
		return
	}
	if next := t(model, state); next != "" {
		m.mu.Lock()
		m.state = next
		m.mu.Unlock()
		m.log.Infof("%s -> %s (event %s)", state, next, event)
	}
}

// Start spawns the periodic tick worker, if one was registered. Safe to
// call on a machine with no OnTick configured: it is then a no-op.
func (m *Machine) Start() {
	m.mu.Lock()
	if m.onTick == nil || m.stop != nil {
		m.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	m.stop = stop
	m.done = done
	interval := m.interval
	m.mu.Unlock()

	go m.tickLoop(interval, stop, done)
}

// Stop halts the periodic tick worker, if running.
func (m *Machine) Stop() {
	m.mu.Lock()
	stop := m.stop
	done := m.done
	m.stop = nil
	m.done = nil
	m.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (m *Machine) tickLoop(interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			cur := m.state
			model := m.model
			tick := m.onTick
			m.mu.Unlock()
			if next := tick(model, cur); next != "" {
				m.mu.Lock()
				m.state = next
				m.mu.Unlock()
				m.log.Infof("%s -> %s (tick)", cur, next)
			}
		}
	}
}

func fmtUnknownMachine(name string) error {
	return fmt.Errorf("statemachine: machine %q not registered", name)
}
