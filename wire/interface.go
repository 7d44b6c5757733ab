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

// Package wire defines the external interface contract that the node
// runtime, dispatcher and message wrappers consume but never implement
// themselves: serialization of typed user messages, the message catalog,
// and the reflective field access that backs path-addressed data
// operations. Concrete message types and their codec are out of scope for
// this module -- user code supplies an Interface implementation per node.
package wire

import "fmt"

// ByteOrder is the endianness of the SPEC length-prefix header, as declared
// by the interface package.
type ByteOrder uint8

const (
	// BigEndian declares a big-endian length header.
	BigEndian ByteOrder = iota
	// LittleEndian declares a little-endian length header.
	LittleEndian
)

// Value is any decoded user message instance. It is opaque to the node
// runtime and message wrappers; only the Interface and FieldAccessor
// contracts know how to look inside one.
type Value any

// Interface is the external codec + catalog contract. One Interface is
// bound to each node at construction time.
type Interface interface {
	// Serialize encodes a decoded message Value back to wire bytes.
	Serialize(messageName string, v Value) ([]byte, error)
	// Deserialize decodes wire bytes into a typed Value for messageName.
	Deserialize(messageName string, data []byte) (Value, error)
	// ClassName returns the concrete message type name carried by data,
	// used by the Spec dispatcher to resolve which (node, type) signal to
	// emit without knowing the message name up front.
	ClassName(data []byte) (string, error)
	// Decode turns a plain nested map (as loaded from a default/glitch
	// YAML payload file, or as supplied to UpdateData) into a typed Value
	// for messageName.
	Decode(messageName string, plain map[string]any) (Value, error)
	// Zero returns a zero-initialized Value for messageName, used when no
	// default payload is configured for an OUT message.
	Zero(messageName string) (Value, error)
	// ToDict converts a decoded Value to a plain nested map, used by
	// GetData when to_dict is requested.
	ToDict(v Value) (map[string]any, error)
	// MessageLengthStartEnd returns [start, end] for the SPEC length
	// header: the first end bytes of a frame contain, at offset start, an
	// unsigned integer giving the total frame length.
	MessageLengthStartEnd() (start, end int)
	// ByteOrder returns the endianness of the SPEC length header.
	ByteOrder() ByteOrder
	// Fields returns the FieldAccessor used to walk a decoded Value by
	// path segment for path-addressed get/update.
	Fields() FieldAccessor
}

// Segment is one hop of a dotted data-operation path: either a field name
// (struct/map member) or a list index.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// String renders a Segment for error messages.
func (s Segment) String() string {
	if s.IsIndex {
		return fmt.Sprintf("[%d]", s.Index)
	}
	return s.Name
}

// FieldAccessor is the reflective field-get/field-set contract that stands
// in for dynamic attribute access: a generic get_field / set_field over a
// sum type of field kinds.
type FieldAccessor interface {
	// Get returns the sub-value reached by seg on v.
	Get(v Value, seg Segment) (Value, error)
	// Set returns a new Value equal to v with the field/index addressed by
	// seg replaced by newVal. Value is returned (not mutated in place) so
	// callers can use it uniformly over immutable and mutable user types.
	Set(v Value, seg Segment, newVal Value) (Value, error)
	// Len returns the length of v if v is a list, or -1 otherwise.
	Len(v Value) int
	// InsertAt inserts items into the list v at the end, returning the new
	// list value.
	InsertAt(v Value, items []Value) (Value, error)
	// RemoveAt removes the elements at the given indexes (which must be
	// valid) from list v, returning the new list value.
	RemoveAt(v Value, indexes []int) (Value, error)
}
