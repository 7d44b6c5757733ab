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

package node

import (
	"fmt"
	"time"
)

// StartPeriodic begins emitting the named OUT message on out.Interval()
// until StopPeriodic is called or the node stops. Calling it twice for the
// same message without an intervening stop is a no-op returning an error,
// enforcing at most one active periodic task per (node, message).
func (n *Node) StartPeriodic(name string) error {
	out, err := n.Messages.Out(name)
	if err != nil {
		return err
	}

	n.periodicMu.Lock()
	if _, active := n.periodic[name]; active {
		n.periodicMu.Unlock()
		return fmt.Errorf("node: periodic task for %q already active", name)
	}
	stop := make(chan struct{})
	n.periodic[name] = stop
	n.periodicMu.Unlock()

	out.SetPeriodic(true)
	n.wg.Add(1)
	go n.periodicLoop(name, out.Interval(), stop)
	return nil
}

// IsPeriodicActive reports whether name currently has a running periodic
// task.
func (n *Node) IsPeriodicActive(name string) bool {
	n.periodicMu.Lock()
	defer n.periodicMu.Unlock()
	_, active := n.periodic[name]
	return active
}

// StopPeriodic cancels the periodic task for name, if any. It is
// idempotent: stopping an inactive message is not an error.
func (n *Node) StopPeriodic(name string) error {
	n.periodicMu.Lock()
	stop, active := n.periodic[name]
	if active {
		delete(n.periodic, name)
	}
	n.periodicMu.Unlock()

	if !active {
		return nil
	}
	close(stop)

	if out, err := n.Messages.Out(name); err == nil {
		out.SetPeriodic(false)
	}
	return nil
}

func (n *Node) periodicLoop(name string, interval time.Duration, stop chan struct{}) {
	defer n.wg.Done()
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if err := n.SendMessage(name); err != nil {
				n.Log.Warnf("periodic send of %q failed: %v", name, err)
			}
		}
	}
}
