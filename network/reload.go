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

package network

// ReloadPayloads applies an edited default or glitch payload file: for
// every message name present in payloads, every node carrying an OUT (or
// TWO_WAY) message of that name has its current payload (glitch=false) or
// glitch shadow (glitch=true) replaced wholesale. Unknown message names are
// skipped rather than treated as an error, since a payload file may cover
// only a subset of the running topology.
func (c *Controller) ReloadPayloads(payloads map[string]map[string]any, glitch bool) error {
	c.mu.RLock()
	nodes := make([]string, 0, len(c.nodes))
	for name := range c.nodes {
		nodes = append(nodes, name)
	}
	c.mu.RUnlock()

	for msgName, payload := range payloads {
		for _, nodeName := range nodes {
			n, err := c.Node(nodeName)
			if err != nil {
				continue
			}
			out, err := n.Messages.Out(msgName)
			if err != nil {
				continue
			}
			if err := out.Update(nil, payload, glitch); err != nil {
				return err
			}
		}
	}
	return nil
}
