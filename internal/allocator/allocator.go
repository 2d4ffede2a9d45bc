// Copyright 2019 Aleksandr Demakin. All rights reserved.

// Package allocator helps to pass Go memory to raw syscalls safely.
package allocator

import (
	"runtime"
	"unsafe"
)

// ByteSliceData returns a pointer to the data of the given byte slice.
func ByteSliceData(slice []byte) unsafe.Pointer {
	if len(slice) == 0 {
		return nil
	}
	return unsafe.Pointer(&slice[0])
}

// Use ensures the object the pointer points to is not garbage-collected
// before this call. Call it after a syscall which received the pointer
// as a uintptr.
func Use(p unsafe.Pointer) {
	runtime.KeepAlive(p)
}
