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
)

// Globals is the shared, string-keyed global-variable table. Unlike
// Requirements, a name must be seeded (via Define) before Update
// can touch it -- an update to an absent key is a user error, not a
// lazily-created one.
type Globals struct {
	mu    sync.RWMutex
	table map[string]any
}

func newGlobals() *Globals {
	return &Globals{table: make(map[string]any)}
}

// Define seeds name with an initial value, creating or overwriting it.
func (g *Globals) Define(name string, value any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.table[name] = value
}

// Get returns the current value of name.
func (g *Globals) Get(name string) (any, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.table[name]
	if !ok {
		return nil, fmt.Errorf("statemachine: global %q is not defined", name)
	}
	return v, nil
}

// Update sets name to value. name must already exist (Define'd up front);
// updating an undefined global is an error.
func (g *Globals) Update(name string, value any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.table[name]; !ok {
		return fmt.Errorf("statemachine: global %q is not defined", name)
	}
	g.table[name] = value
	return nil
}
