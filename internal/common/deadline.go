// Copyright 2019 Aleksandr Demakin. All rights reserved.

package common

import (
	"time"

	"golang.org/x/sys/unix"
)

// DeadlineToTimespec converts an absolute point in time to the timespec
// the timed mq syscalls expect. Points outside the timespec range are
// clamped to its edges: a wait bounded by a deadline the clock can never
// reach is simply a very long wait, not an error.
//
// time.Time already keeps floor seconds plus a nanosecond in [0, 1e9),
// so pre-epoch times need no sign fixup here. The kernel still rejects
// negative seconds with EINVAL on Linux, which callers see as an
// invalid-input error.
func DeadlineToTimespec(deadline time.Time) unix.Timespec {
	sec := deadline.Unix()
	if sec >= maxTimespecSec {
		return makeTimespec(maxTimespecSec, 999999999)
	}
	if sec <= minTimespecSec {
		return makeTimespec(minTimespecSec+1, 0)
	}
	return makeTimespec(sec, int64(deadline.Nanosecond()))
}

// TimeoutToTimespec converts a relative timeout to the absolute timespec
// the timed mq syscalls expect, measured from now. A zero or negative
// timeout produces an already-expired timespec, making the syscall a
// single immediate attempt. time.Duration is bounded to around 292
// years, so the addition cannot wrap.
func TimeoutToTimespec(timeout time.Duration) unix.Timespec {
	return DeadlineToTimespec(time.Now().Add(timeout))
}
