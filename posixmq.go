// Copyright 2019 Aleksandr Demakin. All rights reserved.

package posixmq

import (
	"os"
	"time"

	"github.com/nxgtw/go-posixmq/internal/common"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Queue is a POSIX message queue. The zero value is not usable, obtain a
// Queue via Open, Create or an OpenOptions chain.
//
// Safe for concurrent use. Close must not race with other operations on
// the same Queue.
type Queue struct {
	mqd int
}

// Open opens an existing queue for both sending and receiving.
// A shorthand for ReadWrite().Open(name).
func Open(name string) (*Queue, error) {
	return ReadWrite().Open(name)
}

// Create opens a queue for both sending and receiving, creating it with
// the given permissions, capacity and message length if it does not
// exist yet.
func Create(name string, mode uint32, capacity, maxMsgLen int) (*Queue, error) {
	return ReadWrite().
		Create().
		Mode(os.FileMode(mode)).
		Capacity(capacity).
		MaxMsgLen(maxMsgLen).
		Open(name)
}

// Send queues a message with the given priority, blocking while the
// queue is full unless it was opened non-blocking. Messages are received
// in order of decreasing priority, equal priorities in FIFO order.
//
// Fails with a KindInvalid error if prio is negative or above the OS
// priority ceiling, and with KindOther if data is longer than the
// queue's max message length.
func (q *Queue) Send(data []byte, prio int) error {
	return q.send(data, prio, nil)
}

// SendTimeout is Send bounded by a timeout, measured from now. It fails
// with a KindTimedOut error once the timeout elapses with the queue
// still full. A zero or negative timeout makes a single immediate
// attempt. On a non-blocking queue the timeout is ignored and a full
// queue fails with KindWouldBlock right away.
func (q *Queue) SendTimeout(data []byte, prio int, timeout time.Duration) error {
	ts := common.TimeoutToTimespec(timeout)
	return q.send(data, prio, &ts)
}

// SendDeadline is Send bounded by an absolute point in time, which makes
// the call restartable: waiting again after an interruption or an
// intermediate failure does not extend the total wait. A deadline in the
// past makes a single immediate attempt.
func (q *Queue) SendDeadline(data []byte, prio int, deadline time.Time) error {
	ts := common.DeadlineToTimespec(deadline)
	return q.send(data, prio, &ts)
}

func (q *Queue) send(data []byte, prio int, timeout *unix.Timespec) error {
	err := common.UninterruptedSyscall(func() error {
		return mq_timedsend(q.mqd, data, prio, timeout)
	})
	if err != nil {
		return errors.Wrap(err, "send failed")
	}
	return nil
}

// Receive takes the oldest message of the highest priority off the
// queue, copies it into buf and returns its length and priority. It
// blocks while the queue is empty unless the queue was opened
// non-blocking.
//
// buf must be at least the queue's max message length, or the call fails
// without consuming anything.
func (q *Queue) Receive(buf []byte) (int, int, error) {
	return q.receive(buf, nil)
}

// ReceiveTimeout is Receive bounded by a timeout, measured from now.
// The same timeout semantics as for SendTimeout apply.
func (q *Queue) ReceiveTimeout(buf []byte, timeout time.Duration) (int, int, error) {
	ts := common.TimeoutToTimespec(timeout)
	return q.receive(buf, &ts)
}

// ReceiveDeadline is Receive bounded by an absolute point in time.
// The same deadline semantics as for SendDeadline apply.
func (q *Queue) ReceiveDeadline(buf []byte, deadline time.Time) (int, int, error) {
	ts := common.DeadlineToTimespec(deadline)
	return q.receive(buf, &ts)
}

func (q *Queue) receive(buf []byte, timeout *unix.Timespec) (int, int, error) {
	var prio uint32
	var length int
	err := common.UninterruptedSyscall(func() error {
		var err error
		length, err = mq_timedreceive(q.mqd, buf, &prio, timeout)
		return err
	})
	if err != nil {
		return 0, 0, errors.Wrap(err, "receive failed")
	}
	return length, int(prio), nil
}

// Attributes is a point-in-time snapshot of a queue's properties.
// Capacity and MaxMsgLen are fixed at creation, CurrentMessages and
// Nonblocking change over time.
type Attributes struct {
	MaxMsgLen       int
	Capacity        int
	CurrentMessages int
	Nonblocking     bool
}

// Attributes returns a snapshot of the queue's properties. It does not
// fail: if the descriptor is broken, a degraded snapshot with zero sizes
// and Nonblocking set is returned, which steers callers away from
// issuing blocking operations on it.
func (q *Queue) Attributes() Attributes {
	var attrs mqAttr
	if err := mq_getsetattr(q.mqd, nil, &attrs); err != nil {
		return Attributes{Nonblocking: true}
	}
	return Attributes{
		MaxMsgLen:       attrs.Msgsize,
		Capacity:        attrs.Maxmsg,
		CurrentMessages: attrs.Curmsgs,
		Nonblocking:     attrs.Flags&unix.O_NONBLOCK != 0,
	}
}

// IsNonblocking reports whether operations on the queue fail instead of
// blocking.
func (q *Queue) IsNonblocking() bool {
	return q.Attributes().Nonblocking
}

// SetNonblocking switches the descriptor between blocking and
// non-blocking mode. The mode is a property of the descriptor, not of
// the queue: it is shared with duplicated descriptors but not with other
// processes' descriptors to the same queue.
func (q *Queue) SetNonblocking(nonblock bool) error {
	attrs := mqAttr{}
	if nonblock {
		attrs.Flags = unix.O_NONBLOCK
	}
	if err := mq_getsetattr(q.mqd, &attrs, nil); err != nil {
		return errors.Wrap(err, "mq_setattr failed")
	}
	return nil
}

// Close closes the queue descriptor. The queue itself lives on until it
// is unlinked. Close is idempotent; after the first call every operation
// on the Queue fails.
func (q *Queue) Close() error {
	if q.mqd < 0 {
		return nil
	}
	err := unix.Close(q.mqd)
	q.mqd = -1
	if err != nil {
		return errors.Wrap(err, "close failed")
	}
	return nil
}
