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

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sabouaram/netsim/control"
)

// readYAML reads the file at path and decodes it into out with yaml.v3.
// Map keys keep their case exactly as written, since node, message and
// request-type names are case-sensitive.
func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

// LoadNetwork decodes the network topology file into a NetworkSpec.
func LoadNetwork(path string) (NetworkSpec, error) {
	spec := make(NetworkSpec)
	if err := readYAML(path, &spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// LoadControlDescriptor decodes the control descriptor file into the
// payload-validation Descriptor the control package consumes directly.
func LoadControlDescriptor(path string) (control.Descriptor, error) {
	var raw descriptorFile
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}

	out := make(control.Descriptor, len(raw))
	for reqType, entry := range raw {
		out[reqType] = control.PayloadSpec{
			Required: entry.Payload.Required,
			Optional: entry.Payload.Optional,
		}
	}
	return out, nil
}

// LoadPayloads decodes a default or glitch payload file into
// message_name -> nested map, ready to feed message.NewOut or
// OutWrapper.Update(nil, v, glitch=true).
func LoadPayloads(path string) (map[string]map[string]any, error) {
	var raw payloadFile
	if err := readYAML(path, &raw); err != nil {
		return nil, err
	}
	return map[string]map[string]any(raw), nil
}
