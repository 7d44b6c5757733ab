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

import "sync"

// sendQueueItem is one entry on a node's sender queue. exit marks the
// EXIT sentinel that tells the sender task to return.
type sendQueueItem struct {
	data []byte
	exit bool
}

// sendQueue is the node's unbounded FIFO send queue: a single sender task
// pulls from it in enqueue order, so a later enqueue can never overtake an
// earlier one on the wire.
type sendQueue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []sendQueueItem
}

func newSendQueue() *sendQueue {
	q := &sendQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends data to the tail of the queue and wakes the sender task.
func (q *sendQueue) push(data []byte) {
	q.mu.Lock()
	q.items = append(q.items, sendQueueItem{data: data})
	q.mu.Unlock()
	q.cond.Signal()
}

// pushExit appends the EXIT sentinel.
func (q *sendQueue) pushExit() {
	q.mu.Lock()
	q.items = append(q.items, sendQueueItem{exit: true})
	q.mu.Unlock()
	q.cond.Signal()
}

// pop blocks until an item is available and returns it.
func (q *sendQueue) pop() sendQueueItem {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item
}
