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

// Package message implements the per-message runtime state: the IN
// wrapper (counter + bounded ring of recent payloads), the OUT wrapper
// (current/default/glitch payload with path-addressed get/update and
// periodic emission flags), and the TWO_WAY union of both.
package message

import (
	"fmt"
	"strings"
)

// Direction classifies a message's traffic direction within a node's
// catalog.
type Direction uint8

const (
	// In marks a message this node only ever receives.
	In Direction = iota
	// Out marks a message this node only ever sends.
	Out
	// TwoWay marks a message this node both sends and receives.
	TwoWay
)

// MaxRingLength is the MAX_LENGTH_IN_MESSAGES_DEQUE constant: the bounded
// size of an IN wrapper's recent-payload ring.
const MaxRingLength = 10

func (d Direction) String() string {
	switch d {
	case In:
		return "IN"
	case Out:
		return "OUT"
	case TwoWay:
		return "TWO_WAY"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// ParseDirection accepts the case-insensitive config spellings used in the
// network YAML.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	case "two_way", "twoway", "bidirectional":
		return TwoWay, nil
	default:
		return 0, fmt.Errorf("message: unknown direction %q", s)
	}
}
