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

import (
	"time"

	"github.com/sabouaram/netsim/errtax"
)

// StartPeriodic begins periodic emission of messageName on the resolved
// node. When interval is non-zero it overrides the OUT wrapper's
// configured interval before the task starts.
func (c *Controller) StartPeriodic(messageName, nodeName string, interval time.Duration) error {
	n, err := c.resolveNode(messageName, nodeName)
	if err != nil {
		return err
	}
	if interval > 0 {
		out, err := n.Messages.Out(messageName)
		if err != nil {
			return err
		}
		out.SetInterval(interval)
	}
	return n.StartPeriodic(messageName)
}

// StopPeriodic cancels periodic emission of messageName on the resolved
// node. It rejects messageName that has no active periodic task, unlike
// the idempotent node-level primitive it delegates to.
func (c *Controller) StopPeriodic(messageName, nodeName string) error {
	n, err := c.resolveNode(messageName, nodeName)
	if err != nil {
		return err
	}
	if !n.IsPeriodicActive(messageName) {
		return errtax.New(errtax.Generic, "periodic task for "+messageName+" is not active")
	}
	return n.StopPeriodic(messageName)
}
