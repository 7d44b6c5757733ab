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
	"sync"
	"time"

	"github.com/sabouaram/netsim/errtax"
	"github.com/sabouaram/netsim/wire"
)

// OutWrapper is the per-message runtime state for a message this node
// sends: the current typed payload, the default template it resets to, a
// "glitch" shadow payload used for fault injection, and the periodic
// emission flags. All reads and mutations hold mu for the whole traversal,
// so a send in progress and a path update can never interleave within one
// message tree.
type OutWrapper struct {
	mu sync.Mutex

	name  string
	iface wire.Interface

	current         wire.Value
	defaultPayload  map[string]any
	glitchPayload   map[string]any
	isGlitching     bool
	periodic        bool
	interval        time.Duration
}

// NewOut builds an OutWrapper for messageName, already reset to its
// default payload.
func NewOut(messageName string, iface wire.Interface, defaultPayload map[string]any) *OutWrapper {
	w := &OutWrapper{
		name:           messageName,
		iface:          iface,
		defaultPayload: defaultPayload,
		glitchPayload:  map[string]any{},
	}
	w.reset()
	return w
}

// Reset re-applies the default payload template to current and drops any
// glitch state.
func (w *OutWrapper) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

func (w *OutWrapper) reset() {
	if w.defaultPayload != nil {
		if v, err := w.iface.Decode(w.name, w.defaultPayload); err == nil {
			w.current = v
		}
	}
	if w.current == nil {
		if v, err := w.iface.Zero(w.name); err == nil {
			w.current = v
		}
	}
	w.glitchPayload = map[string]any{}
	w.isGlitching = false
}

// Update mutates either the typed payload tree (glitch=false) or the
// glitch shadow map (glitch=true). An empty path replaces
// the whole payload; otherwise the path is walked through len(path)-1 hops
// and the last segment sets the targeted field.
func (w *OutWrapper) Update(path []wire.Segment, value any, glitch bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if glitch {
		return w.updateGlitch(path, value)
	}
	return w.updateTyped(path, value)
}

func (w *OutWrapper) updateTyped(path []wire.Segment, value any) error {
	if len(path) == 0 {
		plain, ok := value.(map[string]any)
		if !ok {
			return errtax.New(errtax.Generic, "replacement value must be a map")
		}
		v, err := w.iface.Decode(w.name, plain)
		if err != nil {
			return errtax.Wrap(errtax.Generic, err)
		}
		w.current = v
		return nil
	}

	fa := w.iface.Fields()
	root := w.current
	return func() error {
		nodes := make([]wire.Value, len(path))
		cur := root
		for i, seg := range path[:len(path)-1] {
			child, err := fa.Get(cur, seg)
			if err != nil {
				return errtax.New(errtax.NotFound, seg.String())
			}
			nodes[i] = cur
			cur = child
		}

		last := path[len(path)-1]
		decoded, err := decodeLeaf(value)
		if err != nil {
			return errtax.Wrap(errtax.Generic, err)
		}

		newCur, err := fa.Set(cur, last, decoded)
		if err != nil {
			return mapFieldErr(err, last)
		}

		for i := len(path) - 2; i >= 0; i-- {
			newCur, err = fa.Set(nodes[i], path[i], newCur)
			if err != nil {
				return mapFieldErr(err, path[i])
			}
		}
		w.current = newCur
		return nil
	}()
}

func (w *OutWrapper) updateGlitch(path []wire.Segment, value any) error {
	if len(path) == 0 {
		plain, ok := value.(map[string]any)
		if !ok {
			return errtax.New(errtax.Generic, "replacement value must be a map")
		}
		w.glitchPayload = plain
		w.isGlitching = true
		return nil
	}

	root := planteMap(w.glitchPayload, path, value)
	w.glitchPayload = root
	w.isGlitching = true
	return nil
}

// Get returns the sub-value addressed by path, optionally converting it to
// a plain map (toDict) and/or deep-copying it to decouple the caller from
// the live payload (copy).
func (w *OutWrapper) Get(path []wire.Segment, glitch, toDict, copy bool) (any, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var v wire.Value
	if glitch {
		var err error
		v, err = getPlain(w.glitchPayload, path)
		if err != nil {
			return nil, err
		}
	} else {
		fa := w.iface.Fields()
		cur := w.current
		for _, seg := range path {
			child, err := fa.Get(cur, seg)
			if err != nil {
				return nil, mapFieldErr(err, seg)
			}
			cur = child
		}
		v = cur
	}

	if toDict {
		if d, ok := v.(map[string]any); ok {
			v = d
		} else if dicter, ok := w.iface.(interface {
			ToDict(wire.Value) (map[string]any, error)
		}); ok {
			if d, err := dicter.ToDict(v); err == nil {
				v = d
			}
		}
	}
	if copy {
		v = deepCopy(v)
	}
	return v, nil
}

// Serialize encodes the payload that should go out on the wire: the
// glitch shadow (decoded through the interface) when is_glitching is set,
// otherwise the current typed payload.
func (w *OutWrapper) Serialize() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isGlitching {
		v, err := w.iface.Decode(w.name, w.glitchPayload)
		if err != nil {
			return nil, errtax.Wrap(errtax.Generic, err)
		}
		return w.iface.Serialize(w.name, v)
	}
	return w.iface.Serialize(w.name, w.current)
}

// AddItems appends items to the list reached by path.
func (w *OutWrapper) AddItems(path []wire.Segment, items []wire.Value) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fa := w.iface.Fields()
	cur, err := w.navigate(path)
	if err != nil {
		return err
	}
	if fa.Len(cur) < 0 {
		return errtax.New(errtax.NotAList, "")
	}
	newList, err := fa.InsertAt(cur, items)
	if err != nil {
		return errtax.Wrap(errtax.NotAList, err)
	}
	return w.replant(path, newList)
}

// RemoveItems removes the given indexes from the list reached by path.
func (w *OutWrapper) RemoveItems(path []wire.Segment, indexes []int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	fa := w.iface.Fields()
	cur, err := w.navigate(path)
	if err != nil {
		return err
	}
	n := fa.Len(cur)
	if n < 0 {
		return errtax.New(errtax.NotAList, "")
	}
	for _, idx := range indexes {
		if idx < 0 || idx >= n {
			return errtax.New(errtax.IndexOutOfRange, "")
		}
	}
	newList, err := fa.RemoveAt(cur, indexes)
	if err != nil {
		return errtax.Wrap(errtax.NotAList, err)
	}
	return w.replant(path, newList)
}

func (w *OutWrapper) navigate(path []wire.Segment) (wire.Value, error) {
	fa := w.iface.Fields()
	cur := w.current
	for _, seg := range path {
		child, err := fa.Get(cur, seg)
		if err != nil {
			return nil, mapFieldErr(err, seg)
		}
		cur = child
	}
	return cur, nil
}

func (w *OutWrapper) replant(path []wire.Segment, newVal wire.Value) error {
	if len(path) == 0 {
		w.current = newVal
		return nil
	}
	fa := w.iface.Fields()
	nodes := make([]wire.Value, len(path))
	cur := w.current
	for i, seg := range path {
		nodes[i] = cur
		child, err := fa.Get(cur, seg)
		if err != nil {
			return mapFieldErr(err, seg)
		}
		cur = child
	}
	cur = newVal
	for i := len(path) - 1; i >= 0; i-- {
		var err error
		cur, err = fa.Set(nodes[i], path[i], cur)
		if err != nil {
			return mapFieldErr(err, path[i])
		}
	}
	w.current = cur
	return nil
}

// SetGlitching toggles whether Serialize emits the glitch shadow.
func (w *OutWrapper) SetGlitching(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.isGlitching = on
}

// IsGlitching reports the current glitch state.
func (w *OutWrapper) IsGlitching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isGlitching
}

// SetPeriodic marks or unmarks this message for periodic emission.
func (w *OutWrapper) SetPeriodic(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.periodic = on
}

// IsPeriodic reports whether this message is currently flagged periodic.
func (w *OutWrapper) IsPeriodic() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.periodic
}

// SetInterval sets the periodic emission interval.
func (w *OutWrapper) SetInterval(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.interval = d
}

// Interval returns the periodic emission interval.
func (w *OutWrapper) Interval() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.interval
}

func decodeLeaf(v any) (any, error) { return v, nil }

func mapFieldErr(err error, seg wire.Segment) error {
	msg := err.Error()
	if msg == "index out of range" {
		return errtax.New(errtax.IndexOutOfRange, seg.String())
	}
	if msg == "not a list" {
		return errtax.New(errtax.NotAList, seg.String())
	}
	return errtax.New(errtax.NotFound, seg.String())
}

// getPlain walks a plain nested map[string]any / []any tree (used for the
// glitch shadow, which is never decoded through the interface).
func getPlain(v any, path []wire.Segment) (any, error) {
	cur := v
	for _, seg := range path {
		if seg.IsIndex {
			list, ok := cur.([]any)
			if !ok {
				return nil, errtax.New(errtax.NotAList, seg.String())
			}
			if seg.Index < 0 || seg.Index >= len(list) {
				return nil, errtax.New(errtax.IndexOutOfRange, seg.String())
			}
			cur = list[seg.Index]
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok || m == nil {
			return nil, errtax.New(errtax.NotFound, seg.String())
		}
		child, ok := m[seg.Name]
		if !ok {
			return nil, errtax.New(errtax.NotFound, seg.String())
		}
		cur = child
	}
	return cur, nil
}

// planteMap walks (and creates, where absent) a plain nested map tree,
// setting the leaf addressed by path to value, and returns the new root.
// Only name segments are followed: when the next segment is a list index,
// the copy is returned with nothing set below that point.
func planteMap(root map[string]any, path []wire.Segment, value any) map[string]any {
	out := make(map[string]any, len(root)+1)
	for k, v := range root {
		out[k] = v
	}

	if len(path) == 1 && !path[0].IsIndex {
		out[path[0].Name] = value
		return out
	}

	seg := path[0]
	if seg.IsIndex {
		// List indices are not traversed in the glitch shadow.
		return out
	}
	child, _ := out[seg.Name].(map[string]any)
	if child == nil {
		child = map[string]any{}
	}
	out[seg.Name] = planteMap(child, path[1:], value)
	return out
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopy(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = deepCopy(vv)
		}
		return out
	default:
		return v
	}
}
