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

package errtax

import "fmt"

// Error is a Kind bound to an optional detail string and parent error. It
// implements the standard error interface and errors.Unwrap so callers can
// still use errors.Is/As against the wrapped parent.
type Error struct {
	kind   Kind
	detail string
	parent error
}

// New builds an Error of the given kind with a detail message.
func New(kind Kind, detail string) *Error {
	return &Error{kind: kind, detail: detail}
}

// Wrap builds an Error of the given kind around a parent error.
func Wrap(kind Kind, parent error) *Error {
	return &Error{kind: kind, parent: parent}
}

// Kind returns the closed-taxonomy value carried by this error.
func (e *Error) Kind() Kind {
	if e == nil {
		return Generic
	}
	return e.kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.detail != "" {
		return fmt.Sprintf("%s: %s", e.kind, e.detail)
	}
	if e.parent != nil {
		return fmt.Sprintf("%s: %s", e.kind, e.parent.Error())
	}
	return e.kind.String()
}

// Unwrap exposes the parent error, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.parent
}

// Is reports whether target is an *Error of the same Kind. This lets
// callers write `errors.Is(err, errtax.New(errtax.NotFound, ""))`.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == other.kind
}
