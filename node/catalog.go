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
	"github.com/sabouaram/netsim/errtax"
	"github.com/sabouaram/netsim/message"
)

// CatalogEntry names a message in a node's catalog: its declared Direction
// and the concrete wrapper backing that direction.
type CatalogEntry struct {
	Direction message.Direction
	Wrapper   message.Wrapper
}

// Catalog is a node's name -> wrapper map: an explicit messages[name]
// lookup rather than dynamic attribute access.
type Catalog map[string]CatalogEntry

// In returns the IN (or TWO_WAY) wrapper for name.
func (c Catalog) In(name string) (*message.InWrapper, error) {
	e, ok := c[name]
	if !ok {
		return nil, errtax.New(errtax.MessageNotFound, name)
	}
	switch w := e.Wrapper.(type) {
	case *message.InWrapper:
		return w, nil
	case *message.TwoWayWrapper:
		return w.InWrapper, nil
	default:
		return nil, errtax.New(errtax.Generic, "message "+name+" is not an IN message")
	}
}

// Out returns the OUT (or TWO_WAY) wrapper for name.
func (c Catalog) Out(name string) (*message.OutWrapper, error) {
	e, ok := c[name]
	if !ok {
		return nil, errtax.New(errtax.MessageNotFound, name)
	}
	switch w := e.Wrapper.(type) {
	case *message.OutWrapper:
		return w, nil
	case *message.TwoWayWrapper:
		return w.OutWrapper, nil
	default:
		return nil, errtax.New(errtax.NotOutMessage, name)
	}
}
