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

import (
	"strconv"
	"strings"

	"github.com/sabouaram/netsim/wire"
)

// SplitPath splits a dotted control-protocol path into the owning message
// name and the remaining field/index segments: the first segment is the
// message name, the remainder a sequence of field names or list indices.
func SplitPath(path string) (messageName string, rest []wire.Segment) {
	parts := strings.Split(path, ".")
	messageName = parts[0]
	rest = make([]wire.Segment, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		if idx, err := strconv.Atoi(p); err == nil {
			rest = append(rest, wire.Segment{IsIndex: true, Index: idx})
		} else {
			rest = append(rest, wire.Segment{Name: p})
		}
	}
	return messageName, rest
}
