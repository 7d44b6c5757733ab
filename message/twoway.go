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

package message

// TwoWayWrapper is the union of an IN and an OUT wrapper for a message
// direction of TWO_WAY: the message is tracked both as something this node
// receives and as something it sends.
type TwoWayWrapper struct {
	*InWrapper
	*OutWrapper
}

// NewTwoWay builds a TwoWayWrapper from a fresh IN side and the given OUT
// side.
func NewTwoWay(out *OutWrapper) *TwoWayWrapper {
	return &TwoWayWrapper{InWrapper: NewIn(), OutWrapper: out}
}

// Wrapper is implemented by InWrapper, OutWrapper and TwoWayWrapper so
// network/control code can type-switch on what a message actually supports
// without knowing its Direction up front.
type Wrapper interface {
	isWrapper()
}

func (*InWrapper) isWrapper()      {}
func (*OutWrapper) isWrapper()     {}
func (*TwoWayWrapper) isWrapper()  {}
