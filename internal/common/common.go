// Copyright 2019 Aleksandr Demakin. All rights reserved.

// Package common keeps helpers shared by ipc syscall wrappers.
package common

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// SyscallErrHasCode reports whether the given error is an
// *os.SyscallError with the given errno, unwrapping any context
// added with errors.Wrap.
func SyscallErrHasCode(err error, code syscall.Errno) bool {
	sysErr, ok := errors.Cause(err).(*os.SyscallError)
	if !ok {
		return false
	}
	errno, ok := sysErr.Err.(syscall.Errno)
	return ok && errno == code
}

// IsInterruptedSyscallErr reports whether the error is EINTR.
func IsInterruptedSyscallErr(err error) bool {
	return SyscallErrHasCode(err, syscall.EINTR)
}

// UninterruptedSyscall calls f, retrying as long as it fails with
// EINTR. Callers passing an absolute timeout get transparent restarts
// without extending the total wait; the timespec must be computed once,
// before the first attempt.
func UninterruptedSyscall(f func() error) error {
	for {
		err := f()
		if err == nil || !IsInterruptedSyscallErr(err) {
			return err
		}
	}
}
