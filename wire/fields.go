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

import "fmt"

// mapFieldAccessor implements FieldAccessor over the map[string]any /
// []any / scalar shape produced by MapInterface.
type mapFieldAccessor struct{}

func (mapFieldAccessor) Get(v Value, seg Segment) (Value, error) {
	if seg.IsIndex {
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("not a list")
		}
		if seg.Index < 0 || seg.Index >= len(list) {
			return nil, fmt.Errorf("index out of range")
		}
		return list[seg.Index], nil
	}

	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, fmt.Errorf("not found")
	}
	child, ok := m[seg.Name]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return child, nil
}

func (mapFieldAccessor) Set(v Value, seg Segment, newVal Value) (Value, error) {
	if seg.IsIndex {
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("not a list")
		}
		if seg.Index < 0 || seg.Index >= len(list) {
			return nil, fmt.Errorf("index out of range")
		}
		out := append([]any(nil), list...)
		out[seg.Index] = newVal
		return out, nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	out := make(map[string]any, len(m)+1)
	for k, vv := range m {
		out[k] = vv
	}
	out[seg.Name] = newVal
	return out, nil
}

func (mapFieldAccessor) Len(v Value) int {
	list, ok := v.([]any)
	if !ok {
		return -1
	}
	return len(list)
}

func (mapFieldAccessor) InsertAt(v Value, items []Value) (Value, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("not a list")
	}
	out := append([]any(nil), list...)
	for _, it := range items {
		out = append(out, it)
	}
	return out, nil
}

func (mapFieldAccessor) RemoveAt(v Value, indexes []int) (Value, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("not a list")
	}
	drop := make(map[int]bool, len(indexes))
	for _, idx := range indexes {
		if idx < 0 || idx >= len(list) {
			return nil, fmt.Errorf("index out of range")
		}
		drop[idx] = true
	}
	out := make([]any, 0, len(list))
	for i, item := range list {
		if !drop[i] {
			out = append(out, item)
		}
	}
	return out, nil
}
