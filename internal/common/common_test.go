// Copyright 2019 Aleksandr Demakin. All rights reserved.

package common

import (
	"os"
	"syscall"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestSyscallErrHasCode(t *testing.T) {
	a := assert.New(t)
	err := os.NewSyscallError("mq_open", syscall.ENOENT)
	a.True(SyscallErrHasCode(err, syscall.ENOENT))
	a.True(SyscallErrHasCode(errors.Wrap(err, "context"), syscall.ENOENT))
	a.False(SyscallErrHasCode(err, syscall.EINVAL))
	a.False(SyscallErrHasCode(errors.New("plain"), syscall.ENOENT))
	a.False(SyscallErrHasCode(nil, syscall.ENOENT))
}

func TestUninterruptedSyscall(t *testing.T) {
	a := assert.New(t)
	calls := 0
	err := UninterruptedSyscall(func() error {
		calls++
		if calls < 3 {
			return os.NewSyscallError("mq_timedreceive", syscall.EINTR)
		}
		return nil
	})
	a.NoError(err)
	a.Equal(3, calls)

	calls = 0
	failure := os.NewSyscallError("mq_timedreceive", syscall.ETIMEDOUT)
	err = UninterruptedSyscall(func() error {
		calls++
		return failure
	})
	a.Equal(failure, err)
	a.Equal(1, calls)
}
