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

// Package statemachine implements the state-machine subsystem at its
// interface with the control bus: named machines running on a periodic
// worker, triggered transitions, property setters, a requirement tracker,
// and a shared global-variable table.
package statemachine

import (
	"fmt"
	"sync"
)

// RequirementState is one of PENDING, PASS, or FAIL. FAIL is a distinct
// value, not an alias of the other two.
type RequirementState uint8

const (
	Pending RequirementState = iota
	Pass
	Fail
)

func (s RequirementState) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	default:
		return fmt.Sprintf("RequirementState(%d)", uint8(s))
	}
}

// Requirements is the name -> state table, created lazily on first touch.
type Requirements struct {
	mu    sync.RWMutex
	table map[string]RequirementState
}

func newRequirements() *Requirements {
	return &Requirements{table: make(map[string]RequirementState)}
}

// State returns the current state of name, creating it as PENDING if this
// is the first reference.
func (r *Requirements) State(name string) RequirementState {
	r.mu.RLock()
	s, ok := r.table[name]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.table[name]; ok {
		return s
	}
	r.table[name] = Pending
	return Pending
}

// Set assigns a new state to name, creating it if absent.
func (r *Requirements) Set(name string, s RequirementState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[name] = s
}

// Names returns every requirement that has been touched.
func (r *Requirements) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.table))
	for n := range r.table {
		names = append(names, n)
	}
	return names
}
