// Copyright 2019 Aleksandr Demakin. All rights reserved.

package posixmq

import (
	"os"
	"syscall"
	"unsafe"

	"github.com/nxgtw/go-posixmq/internal/allocator"

	"golang.org/x/sys/unix"
)

const (
	// DefaultCapacity is the number of messages a queue created without
	// explicit attributes can hold.
	DefaultCapacity = 10
	// DefaultMaxMsgLen is the message length of a queue created without
	// explicit attributes.
	DefaultMaxMsgLen = 1024

	// FreeBSD's kmq_open honors close-on-exec at open time.
	openIgnoresCloexec = false
)

// mqAttr mirrors the kernel's mq_attr, including the reserved tail.
type mqAttr struct {
	Flags   int
	Maxmsg  int
	Msgsize int
	Curmsgs int
	_       [4]int
}

// The kmq_* syscalls are the raw interface behind FreeBSD's librt
// mq_* wrappers. Unlike the libc mqd_t, they deal in plain file
// descriptors, which is what makes Fd and Dup work here.

func mq_open(name *byte, flags int, mode uint32, attrs *mqAttr) (int, error) {
	nameP := unsafe.Pointer(name)
	attrsP := unsafe.Pointer(attrs)
	id, _, err := syscall.Syscall6(unix.SYS_KMQ_OPEN,
		uintptr(nameP),
		uintptr(flags),
		uintptr(mode),
		uintptr(attrsP),
		0,
		0)
	allocator.Use(nameP)
	allocator.Use(attrsP)
	if err != syscall.Errno(0) {
		return -1, os.NewSyscallError("kmq_open", err)
	}
	return int(id), nil
}

func mq_timedsend(mqd int, data []byte, prio int, timeout *unix.Timespec) error {
	rawData := allocator.ByteSliceData(data)
	timeoutP := unsafe.Pointer(timeout)
	_, _, err := syscall.Syscall6(unix.SYS_KMQ_TIMEDSEND,
		uintptr(mqd),
		uintptr(rawData),
		uintptr(len(data)),
		uintptr(prio),
		uintptr(timeoutP),
		0)
	allocator.Use(rawData)
	allocator.Use(timeoutP)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("kmq_timedsend", err)
	}
	return nil
}

func mq_timedreceive(mqd int, data []byte, prio *uint32, timeout *unix.Timespec) (int, error) {
	rawData := allocator.ByteSliceData(data)
	prioP := unsafe.Pointer(prio)
	timeoutP := unsafe.Pointer(timeout)
	length, _, err := syscall.Syscall6(unix.SYS_KMQ_TIMEDRECEIVE,
		uintptr(mqd),
		uintptr(rawData),
		uintptr(len(data)),
		uintptr(prioP),
		uintptr(timeoutP),
		0)
	allocator.Use(rawData)
	allocator.Use(prioP)
	allocator.Use(timeoutP)
	if err != syscall.Errno(0) {
		return 0, os.NewSyscallError("kmq_timedreceive", err)
	}
	return int(length), nil
}

func mq_getsetattr(mqd int, attrs, oldAttrs *mqAttr) error {
	attrsP := unsafe.Pointer(attrs)
	oldAttrsP := unsafe.Pointer(oldAttrs)
	_, _, err := syscall.Syscall(unix.SYS_KMQ_SETATTR,
		uintptr(mqd),
		uintptr(attrsP),
		uintptr(oldAttrsP))
	allocator.Use(attrsP)
	allocator.Use(oldAttrsP)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("kmq_setattr", err)
	}
	return nil
}

func mq_unlink(name *byte) error {
	nameP := unsafe.Pointer(name)
	_, _, err := syscall.Syscall(unix.SYS_KMQ_UNLINK, uintptr(nameP), 0, 0)
	allocator.Use(nameP)
	if err != syscall.Errno(0) {
		return os.NewSyscallError("kmq_unlink", err)
	}
	return nil
}
