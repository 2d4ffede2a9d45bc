// Copyright 2019 Aleksandr Demakin. All rights reserved.

//go:build linux || freebsd

package posixmq

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Fd exposes the queue descriptor as a plain file descriptor, for use
// with epoll/kqueue style readiness polling. A queue fd polls readable
// when the queue has messages and writable when it has room.
//
// The descriptor is still owned by the Queue; do not close it directly.
func (q *Queue) Fd() int {
	return q.mqd
}

// FromFd wraps an existing queue descriptor, taking ownership of it.
func FromFd(fd int) *Queue {
	return &Queue{mqd: fd}
}

// Dup duplicates the descriptor. The copy refers to the same queue and
// shares its non-blocking mode, but has its own close-on-exec flag,
// which Dup sets.
func (q *Queue) Dup() (*Queue, error) {
	fd, err := unix.FcntlInt(uintptr(q.mqd), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrap(err, "dup failed")
	}
	return &Queue{mqd: fd}, nil
}

// CloseOnExec reports whether the descriptor is closed across exec.
// Queue descriptors have the flag set by default. If the flag cannot be
// retrieved, true is returned, matching the default.
func (q *Queue) CloseOnExec() bool {
	flags, err := unix.FcntlInt(uintptr(q.mqd), unix.F_GETFD, 0)
	if err != nil {
		return true
	}
	return flags&unix.FD_CLOEXEC != 0
}

// SetCloseOnExec changes whether the descriptor survives exec. Clearing
// the flag is the unusual direction, used to pass a queue to a child
// process by inheritance.
func (q *Queue) SetCloseOnExec(closeOnExec bool) error {
	flags, err := unix.FcntlInt(uintptr(q.mqd), unix.F_GETFD, 0)
	if err != nil {
		return errors.Wrap(err, "fcntl(F_GETFD) failed")
	}
	if closeOnExec {
		flags |= unix.FD_CLOEXEC
	} else {
		flags &^= unix.FD_CLOEXEC
	}
	if _, err = unix.FcntlInt(uintptr(q.mqd), unix.F_SETFD, flags); err != nil {
		return errors.Wrap(err, "fcntl(F_SETFD) failed")
	}
	return nil
}
