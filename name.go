// Copyright 2019 Aleksandr Demakin. All rights reserved.

package posixmq

import (
	"bytes"
	"strings"
)

// cstrBufSize is the size of the stack buffer used to build kernel names
// for short queue names, which covers the common case without allocating
// on the open/unlink path.
const cstrBufSize = 32

// NameFromBytes converts a queue name into the form the kernel call
// expects: exactly one leading slash and a terminating NUL. The input is
// returned as-is, without copying, when it is already of that form. A
// single trailing NUL is equivalent to its absence, so NameFromBytes(n)
// and NameFromBytes(append(n, 0)) denote the same queue.
//
// Names with interior NUL bytes fail with a KindInvalid error. The "no
// further slashes" rule is left to the kernel, which reports violations
// as a permission error.
func NameFromBytes(name []byte) ([]byte, error) {
	if len(name) >= 2 && name[0] == '/' && name[len(name)-1] == 0 &&
		bytes.IndexByte(name[:len(name)-1], 0) < 0 {
		return name, nil
	}
	if len(name) > 0 && name[len(name)-1] == 0 {
		name = name[:len(name)-1]
	}
	if bytes.IndexByte(name, 0) >= 0 {
		return nil, errNameNul
	}
	normalized := make([]byte, 0, len(name)+2)
	if len(name) == 0 || name[0] != '/' {
		normalized = append(normalized, '/')
	}
	normalized = append(normalized, name...)
	normalized = append(normalized, 0)
	return normalized, nil
}

// MustNameFromBytes is like NameFromBytes but panics on interior NUL
// bytes, for call sites which construct names themselves and want a
// non-fallible conversion.
func MustNameFromBytes(name []byte) []byte {
	normalized, err := NameFromBytes(name)
	if err != nil {
		panic(err)
	}
	return normalized
}

// nameToPtr builds the NUL-terminated kernel name for the syscall layer.
// Short names are written into buf, longer ones are heap-allocated.
func nameToPtr(name string, buf *[cstrBufSize]byte) (*byte, error) {
	if len(name) > 0 && name[0] == '/' {
		name = name[1:]
	}
	if len(name) > 0 && name[len(name)-1] == 0 {
		name = name[:len(name)-1]
	}
	if strings.IndexByte(name, 0) >= 0 {
		return nil, errNameNul
	}
	if len(name) <= cstrBufSize-2 {
		buf[0] = '/'
		copy(buf[1:], name)
		buf[len(name)+1] = 0
		return &buf[0], nil
	}
	long := make([]byte, len(name)+2)
	long[0] = '/'
	copy(long[1:], name)
	return &long[0], nil
}
