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

// Package errtax defines the closed set of logical error kinds returned by
// the data operations of the network controller and message wrappers.
//
// Unlike transport or framing failures (which are plain wrapped stdlib
// errors that terminate a connection), the kinds in this package are values:
// data operations return them instead of panicking or logging, and the
// control protocol layer turns a returned Error into an ErrorReply envelope
// using Kind.String() as the wire "error" field.
package errtax

// Kind is one member of the closed error taxonomy.
type Kind uint8

const (
	// Generic covers failures that do not fit a more specific kind.
	Generic Kind = iota
	// NotFound is returned when a path segment (field name) does not exist
	// on the navigated message, or traverses through a nil subtree.
	NotFound
	// NotAList is returned when a list operation targets a non-list value.
	NotAList
	// IndexOutOfRange is returned when a list index is beyond the end of
	// the addressed list, both for Get and for RemoveItems.
	IndexOutOfRange
	// NodeNotFound is returned when a node name does not exist in the
	// network controller's registry.
	NodeNotFound
	// MessageNotFound is returned when a message name is not present in
	// the addressed node's catalog.
	MessageNotFound
	// MessageNotUnique is raised as a panic value (not returned) when a
	// message name resolves to more than one node and no explicit node
	// name was given.
	MessageNotUnique
	// NotOutMessage is returned when an OUT-only operation is attempted on
	// an IN wrapper.
	NotOutMessage
)

// String renders the Kind using the exact name the control protocol's
// ErrorReply.Error field must carry.
func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NOT_FOUND"
	case NotAList:
		return "NOT_A_LIST"
	case IndexOutOfRange:
		return "INDEX_OUT_OF_RANGE"
	case NodeNotFound:
		return "NODE_NOT_FOUND"
	case MessageNotFound:
		return "MESSAGE_NOT_FOUND"
	case MessageNotUnique:
		return "MESSAGE_NOT_UNIQUE"
	case NotOutMessage:
		return "NOT_OUT_MESSAGE"
	default:
		return "GENERIC"
	}
}
