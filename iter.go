// Copyright 2019 Aleksandr Demakin. All rights reserved.

package posixmq

import (
	"github.com/pkg/errors"
)

// Iter drains a queue message by message in priority order. Iteration
// ends when a receive would block, which on a blocking descriptor means
// it never ends. Any other receive failure panics, so iterating a queue
// not opened for receiving is a programming error.
type Iter struct {
	q                *Queue
	buf              []byte
	closeWhenDrained bool
}

// Iter returns an iterator borrowing the queue. The receive buffer is
// sized to the queue's max message length once, up front.
func (q *Queue) Iter() *Iter {
	return &Iter{q: q, buf: make([]byte, q.Attributes().MaxMsgLen)}
}

// IntoIter is like Iter, but the iterator takes over the queue and
// closes it once drained.
func (q *Queue) IntoIter() *Iter {
	it := q.Iter()
	it.closeWhenDrained = true
	return it
}

// Next receives the next message, returning a copy of its payload and
// its priority. ok is false once receiving would block.
func (it *Iter) Next() (msg []byte, prio int, ok bool) {
	length, prio, err := it.q.Receive(it.buf)
	if err != nil {
		if Kind(err) == KindWouldBlock {
			if it.closeWhenDrained {
				it.q.Close()
			}
			return nil, 0, false
		}
		panic(errors.Wrap(err, "cannot receive from message queue"))
	}
	msg = make([]byte, length)
	copy(msg, it.buf[:length])
	return msg, prio, true
}
