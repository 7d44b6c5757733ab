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

package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// envelope is the wire shape used by MapInterface: an 8-byte length header
// (first 4 bytes hold the uint32 total length, last 4 bytes are reserved)
// followed by a JSON body naming the message type.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// MapInterface is a JSON + map[string]any reference implementation of
// Interface. It exists so node/message/network/control can be exercised in
// tests without code-generating per-message Go types -- real deployments
// plug in their own Interface backed by generated structs; message-type
// definitions and their wire codec are otherwise left to user code.
type MapInterface struct {
	order ByteOrder
}

// NewMapInterface builds a MapInterface using the given SPEC header
// endianness.
func NewMapInterface(order ByteOrder) *MapInterface {
	return &MapInterface{order: order}
}

func (m *MapInterface) Serialize(messageName string, v Value) ([]byte, error) {
	body, err := json.Marshal(envelope{Type: messageName, Data: v})
	if err != nil {
		return nil, err
	}

	header := make([]byte, 8)
	total := uint32(len(header) + len(body))
	if m.order == LittleEndian {
		binary.LittleEndian.PutUint32(header[0:4], total)
	} else {
		binary.BigEndian.PutUint32(header[0:4], total)
	}
	return append(header, body...), nil
}

func (m *MapInterface) Deserialize(messageName string, data []byte) (Value, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("wire: frame too short: %d bytes", len(data))
	}
	var e envelope
	if err := json.Unmarshal(data[8:], &e); err != nil {
		return nil, fmt.Errorf("wire: decode %s: %w", messageName, err)
	}
	if e.Data == nil {
		return map[string]any{}, nil
	}
	return e.Data, nil
}

func (m *MapInterface) ClassName(data []byte) (string, error) {
	if len(data) < 8 {
		return "", fmt.Errorf("wire: frame too short: %d bytes", len(data))
	}
	var e envelope
	if err := json.Unmarshal(data[8:], &e); err != nil {
		return "", err
	}
	if e.Type == "" {
		return "", fmt.Errorf("wire: missing type in frame")
	}
	return e.Type, nil
}

func (m *MapInterface) Decode(messageName string, plain map[string]any) (Value, error) {
	return deepCopyValue(plain), nil
}

func (m *MapInterface) Zero(messageName string) (Value, error) {
	return map[string]any{}, nil
}

func (m *MapInterface) ToDict(v Value) (map[string]any, error) {
	if v == nil {
		return map[string]any{}, nil
	}
	d, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("wire: value is not a map: %T", v)
	}
	return d, nil
}

func (m *MapInterface) MessageLengthStartEnd() (int, int) { return 0, 8 }

func (m *MapInterface) ByteOrder() ByteOrder { return m.order }

func (m *MapInterface) Fields() FieldAccessor { return mapFieldAccessor{} }

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopyValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = deepCopyValue(vv)
		}
		return out
	default:
		return v
	}
}
