// Copyright 2019 Aleksandr Demakin. All rights reserved.

package posixmq

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// OpenOptions describes how a queue is opened or created. The setters
// mutate and return the same object for chaining; a terminal Open call
// issues the syscall.
type OpenOptions struct {
	flags     int
	mode      uint32
	capacity  int
	maxMsgLen int
}

func newOpenOptions(accessMode int) *OpenOptions {
	// queues are created accessible to the owner only, unless Mode is called
	return &OpenOptions{flags: accessMode, mode: 0600}
}

// ReadOnly prepares opening a queue for receiving only.
func ReadOnly() *OpenOptions { return newOpenOptions(unix.O_RDONLY) }

// WriteOnly prepares opening a queue for sending only.
func WriteOnly() *OpenOptions { return newOpenOptions(unix.O_WRONLY) }

// ReadWrite prepares opening a queue for both sending and receiving.
func ReadWrite() *OpenOptions { return newOpenOptions(unix.O_RDWR) }

// Mode sets the permission bits the queue is created with. They are
// subject to the process umask and ignored entirely once the queue
// exists.
func (o *OpenOptions) Mode(mode os.FileMode) *OpenOptions {
	o.mode = uint32(mode.Perm())
	return o
}

// Capacity sets the maximum number of queued messages. When the queue is
// full, further sends block or fail with a KindWouldBlock error.
//
// If both capacity and max message length are zero, the queue is created
// with OS-chosen defaults. The kernel rejects a pair where only one of
// the two is set.
func (o *OpenOptions) Capacity(capacity int) *OpenOptions {
	o.capacity = capacity
	return o
}

// MaxMsgLen sets the maximum size of a single message. Receive fails if
// given a buffer smaller than this value. The same zero-pair rule as for
// Capacity applies.
func (o *OpenOptions) MaxMsgLen(maxMsgLen int) *OpenOptions {
	o.maxMsgLen = maxMsgLen
	return o
}

// Create opens the queue if it exists and creates it otherwise.
func (o *OpenOptions) Create() *OpenOptions {
	o.flags |= unix.O_CREAT
	o.flags &^= unix.O_EXCL
	return o
}

// CreateNew creates the queue, failing with a KindExist error if it
// already exists.
func (o *OpenOptions) CreateNew() *OpenOptions {
	o.flags |= unix.O_CREAT | unix.O_EXCL
	return o
}

// Existing requires the queue to exist, failing with a KindNotFound
// error if it does not.
func (o *OpenOptions) Existing() *OpenOptions {
	o.flags &^= unix.O_CREAT | unix.O_EXCL
	return o
}

// Nonblocking opens the queue in non-blocking mode. Required when the
// descriptor is registered with a readiness multiplexer.
func (o *OpenOptions) Nonblocking() *OpenOptions {
	o.flags |= unix.O_NONBLOCK
	return o
}

// Open normalizes name the way NameFromBytes does and opens the queue.
// Error kinds: KindNotFound if the queue must exist but does not or the
// name is degenerate, KindExist on an exclusive create of an existing
// queue, KindPermission on an access mode mismatch or a name with extra
// path segments, KindInvalid on a malformed capacity pair or a name with
// interior NUL bytes, and KindOther for system-wide limits and a kernel
// without mq support.
func (o *OpenOptions) Open(name string) (*Queue, error) {
	var buf [cstrBufSize]byte
	namep, err := nameToPtr(name, &buf)
	if err != nil {
		return nil, err
	}
	return o.open(namep)
}

// OpenCStr opens a queue from a raw kernel name, without inspecting or
// normalizing anything but the terminating NUL. On the BSDs this allows
// access to queues whose names do not start with a slash.
func (o *OpenOptions) OpenCStr(name []byte) (*Queue, error) {
	if len(name) == 0 || name[len(name)-1] != 0 {
		return nil, errors.New("raw queue name must be NUL-terminated")
	}
	return o.open(&name[0])
}

func (o *OpenOptions) open(name *byte) (*Queue, error) {
	var attrs *mqAttr
	if o.capacity != 0 || o.maxMsgLen != 0 {
		attrs = &mqAttr{Maxmsg: o.capacity, Msgsize: o.maxMsgLen}
	}
	mqd, err := mq_open(name, o.flags, o.mode, attrs)
	if err != nil {
		return nil, errors.Wrap(err, "mq_open failed")
	}
	q := &Queue{mqd: mqd}
	if openIgnoresCloexec {
		// The kernel ignored the close-on-exec request at open time, so
		// set the flag on the descriptor now. A failure here is kept
		// distinct from an open failure: the queue may have been created
		// and the caller may want to unlink it.
		if err := q.SetCloseOnExec(true); err != nil {
			q.Close()
			return nil, errors.Wrap(err, "close-on-exec fixup after open failed")
		}
	}
	return q, nil
}

// Unlink removes a queue by name. The queue is destroyed once every
// process holding a descriptor to it has closed it.
func Unlink(name string) error {
	var buf [cstrBufSize]byte
	namep, err := nameToPtr(name, &buf)
	if err != nil {
		return err
	}
	if err := mq_unlink(namep); err != nil {
		return errors.Wrap(err, "mq_unlink failed")
	}
	return nil
}

// UnlinkCStr removes a queue by raw, NUL-terminated kernel name, without
// inspecting or normalizing it.
func UnlinkCStr(name []byte) error {
	if len(name) == 0 || name[len(name)-1] != 0 {
		return errors.New("raw queue name must be NUL-terminated")
	}
	if err := mq_unlink(&name[0]); err != nil {
		return errors.Wrap(err, "mq_unlink failed")
	}
	return nil
}
