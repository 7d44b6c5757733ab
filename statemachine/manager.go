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

	"github.com/sabouaram/netsim/netlog"
)

// Manager is the process-scoped owner of every named Machine plus the
// shared Requirements and Globals tables, created once at program start
// and passed explicitly to the control package.
type Manager struct {
	mu       sync.RWMutex
	machines map[string]*Machine

	Requirements *Requirements
	Globals      *Globals

	log netlog.Logger
}

// NewManager builds an empty Manager.
func NewManager(log netlog.Logger) *Manager {
	if log == nil {
		log = netlog.Noop()
	}
	return &Manager{
		machines:     make(map[string]*Machine),
		Requirements: newRequirements(),
		Globals:      newGlobals(),
		log:          log.Named("statemachine"),
	}
}

// Register adds m under its own name. A duplicate name is a fatal
// configuration error, reported as a plain error.
func (mgr *Manager) Register(m *Machine) error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	if _, dup := mgr.machines[m.Name]; dup {
		return fmt.Errorf("statemachine: duplicate machine name %q", m.Name)
	}
	mgr.machines[m.Name] = m
	return nil
}

// Machine returns the named machine.
func (mgr *Manager) Machine(name string) (*Machine, error) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	m, ok := mgr.machines[name]
	if !ok {
		return nil, fmtUnknownMachine(name)
	}
	return m, nil
}

// SetProperty sets property on the named machine's model, per the control
// protocol's UpdateSMPropertyRequest.
func (mgr *Manager) SetProperty(machineName, property string, value any) error {
	m, err := mgr.Machine(machineName)
	if err != nil {
		return err
	}
	return m.SetProperty(property, value)
}

// Start starts every registered machine's periodic worker.
func (mgr *Manager) Start() {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	for _, m := range mgr.machines {
		m.Start()
	}
}

// Stop stops every registered machine's periodic worker.
func (mgr *Manager) Stop() {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	for _, m := range mgr.machines {
		m.Stop()
	}
}
