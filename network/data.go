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
	"github.com/sabouaram/netsim/message"
	"github.com/sabouaram/netsim/wire"
)

// GetMessageWrap returns the per-message wrapper for messageName on the
// resolved node, for control handlers reading counter/last_time/last(n).
func (c *Controller) GetMessageWrap(messageName, nodeName string) (message.Wrapper, error) {
	n, err := c.resolveNode(messageName, nodeName)
	if err != nil {
		return nil, err
	}
	e, ok := n.Messages[messageName]
	if !ok {
		return nil, messageNotFoundError(messageName)
	}
	return e.Wrapper, nil
}

// UpdateData mutates the payload addressed by path on the resolved node's
// OUT wrapper. path's first segment is the message name.
func (c *Controller) UpdateData(path string, value any, nodeName string, glitch bool) error {
	msgName, rest := message.SplitPath(path)
	n, err := c.resolveNode(msgName, nodeName)
	if err != nil {
		return err
	}
	out, err := n.Messages.Out(msgName)
	if err != nil {
		return err
	}
	return out.Update(rest, value, glitch)
}

// GetData returns the subtree addressed by path on the resolved node's OUT
// wrapper.
func (c *Controller) GetData(path, nodeName string, glitch, toDict, copy bool) (any, error) {
	msgName, rest := message.SplitPath(path)
	n, err := c.resolveNode(msgName, nodeName)
	if err != nil {
		return nil, err
	}
	out, err := n.Messages.Out(msgName)
	if err != nil {
		return nil, err
	}
	return out.Get(rest, glitch, toDict, copy)
}

// ResetData re-applies the default payload template to the named OUT
// messages of nodeName, or every OUT message on that node if messages is
// empty.
func (c *Controller) ResetData(nodeName string, messages []string) error {
	n, err := c.Node(nodeName)
	if err != nil {
		return err
	}

	names := messages
	if len(names) == 0 {
		for name, e := range n.Messages {
			switch e.Wrapper.(type) {
			case *message.OutWrapper, *message.TwoWayWrapper:
				names = append(names, name)
			}
		}
	}

	for _, name := range names {
		out, err := n.Messages.Out(name)
		if err != nil {
			return err
		}
		out.Reset()
	}
	return nil
}

// AddItems and RemoveItems expose the OUT wrapper's list operations
// through the same path-addressing convention as UpdateData.
func (c *Controller) AddItems(path, nodeName string, items []wire.Value) error {
	msgName, rest := message.SplitPath(path)
	n, err := c.resolveNode(msgName, nodeName)
	if err != nil {
		return err
	}
	out, err := n.Messages.Out(msgName)
	if err != nil {
		return err
	}
	return out.AddItems(rest, items)
}

func (c *Controller) RemoveItems(path, nodeName string, indexes []int) error {
	msgName, rest := message.SplitPath(path)
	n, err := c.resolveNode(msgName, nodeName)
	if err != nil {
		return err
	}
	out, err := n.Messages.Out(msgName)
	if err != nil {
		return err
	}
	return out.RemoveItems(rest, indexes)
}
