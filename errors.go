// Copyright 2019 Aleksandr Demakin. All rights reserved.

package posixmq

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// ErrorKind classifies errors returned by this package by cause,
// independent of the message and of how deeply they are wrapped.
type ErrorKind int

const (
	// KindOther covers everything without a dedicated kind: resource
	// exhaustion, oversized messages, names that are too long, and the
	// kernel being built without message queue support.
	KindOther ErrorKind = iota
	// KindNotFound means the queue was required to exist, but does not.
	// Degenerate names such as "/" are reported the same way.
	KindNotFound
	// KindExist is returned by an exclusive create of an existing queue.
	KindExist
	// KindPermission covers access mode mismatches. The kernel also
	// reports names with extra path segments this way.
	KindPermission
	// KindInvalid covers names with interior NUL bytes, a partially
	// specified capacity/length pair and out-of-range priorities.
	KindInvalid
	// KindWouldBlock is the immediate failure of an operation on a
	// non-blocking descriptor that cannot proceed right now.
	KindWouldBlock
	// KindTimedOut is the failure of a time-bounded operation whose
	// deadline elapsed. Never conflated with KindWouldBlock: on a
	// non-blocking descriptor the timed operations degrade to
	// KindWouldBlock instead.
	KindTimedOut
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindExist:
		return "already exists"
	case KindPermission:
		return "permission denied"
	case KindInvalid:
		return "invalid input"
	case KindWouldBlock:
		return "would block"
	case KindTimedOut:
		return "timed out"
	default:
		return "other"
	}
}

// errNameNul reports an interior NUL byte in a queue name.
// An interior NUL is a caller bug, not a runtime condition.
var errNameNul = errors.New("queue name contains interior NUL bytes")

// Kind returns the classification of an error produced by this package.
// It unwraps the context added by the library and inspects the errno of
// the underlying syscall failure.
func Kind(err error) ErrorKind {
	cause := errors.Cause(err)
	if cause == errNameNul {
		return KindInvalid
	}
	if sysErr, ok := cause.(*os.SyscallError); ok {
		cause = sysErr.Err
	}
	errno, ok := cause.(syscall.Errno)
	if !ok {
		return KindOther
	}
	switch errno {
	case syscall.ENOENT:
		return KindNotFound
	case syscall.EEXIST:
		return KindExist
	case syscall.EACCES:
		return KindPermission
	case syscall.EINVAL:
		return KindInvalid
	case syscall.EAGAIN:
		return KindWouldBlock
	case syscall.ETIMEDOUT:
		return KindTimedOut
	}
	return KindOther
}

// IsTemporary reports whether err only means the operation could not
// complete right now, i.e. it is a would-block or timed-out condition
// rather than a persistent failure.
func IsTemporary(err error) bool {
	k := Kind(err)
	return k == KindWouldBlock || k == KindTimedOut
}
