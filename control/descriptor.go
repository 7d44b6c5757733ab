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

// Package control implements the fixed set of control-protocol request
// handlers registered on a control node: payload validation against a
// descriptor, the fourteen named request/reply pairs, and the
// ErrorReply/SuccessReply conversion rules.
package control

// PayloadSpec describes one request type's payload shape: keys that must
// be present, and keys that default to a value when absent.
type PayloadSpec struct {
	Required []string       `yaml:"required"`
	Optional map[string]any `yaml:"optional"`
}

// Descriptor is the full request_type -> payload shape table, as loaded
// from the control descriptor YAML file.
type Descriptor map[string]PayloadSpec

// Validate checks payload against spec's required keys and fills in
// defaults for any missing optional key. It never mutates the caller's
// map; it returns a new one.
func (s PayloadSpec) Validate(payload map[string]any) (map[string]any, error) {
	for _, key := range s.Required {
		if _, ok := payload[key]; !ok {
			return nil, &RequiredKeyError{Key: key}
		}
	}

	out := make(map[string]any, len(payload)+len(s.Optional))
	for k, def := range s.Optional {
		out[k] = def
	}
	for k, v := range payload {
		out[k] = v
	}
	return out, nil
}

// RequiredKeyError is returned by Validate when a required payload key is
// missing; its class name ("RequiredKeyError") is used verbatim as the
// ErrorReply's error field.
type RequiredKeyError struct {
	Key string
}

func (e *RequiredKeyError) Error() string {
	return "missing required payload key " + e.Key
}
