// Copyright 2019 Aleksandr Demakin. All rights reserved.

package posixmq

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromBytes(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		input    string
		expected string
	}{
		{"queue", "/queue\x00"},
		{"/queue", "/queue\x00"},
		{"queue\x00", "/queue\x00"},
		{"/queue\x00", "/queue\x00"},
		{"", "/\x00"},
		{"\x00", "/\x00"},
		{"/", "/\x00"},
	}
	for _, test := range tests {
		result, err := NameFromBytes([]byte(test.input))
		if a.NoError(err, "input %q", test.input) {
			a.Equal([]byte(test.expected), result, "input %q", test.input)
		}
	}
}

func TestNameFromBytesZeroCopy(t *testing.T) {
	a := assert.New(t)
	input := []byte("/queue\x00")
	result, err := NameFromBytes(input)
	if a.NoError(err) {
		a.Equal(&input[0], &result[0], "well-formed input must be returned as-is")
	}
}

func TestNameFromBytesInteriorNul(t *testing.T) {
	a := assert.New(t)
	for _, input := range []string{"a\x00b", "\x00queue", "a\x00\x00"} {
		_, err := NameFromBytes([]byte(input))
		if a.Error(err, "input %q", input) {
			a.Equal(KindInvalid, Kind(err))
		}
	}
}

func TestMustNameFromBytes(t *testing.T) {
	a := assert.New(t)
	a.Equal([]byte("/queue\x00"), MustNameFromBytes([]byte("queue")))
	a.Panics(func() {
		MustNameFromBytes([]byte("a\x00b"))
	})
}

func TestNameToPtr(t *testing.T) {
	a := assert.New(t)
	long := bytes.Repeat([]byte{'n'}, cstrBufSize)
	tests := []string{
		"queue",
		"/queue",
		"queue\x00",
		string(long),
		string(append([]byte{'/'}, long...)),
	}
	for _, test := range tests {
		var buf [cstrBufSize]byte
		ptr, err := nameToPtr(test, &buf)
		if a.NoError(err, "input %q", test) {
			a.Equal(byte('/'), *ptr, "input %q", test)
		}
	}
	var buf [cstrBufSize]byte
	_, err := nameToPtr("a\x00b", &buf)
	if a.Error(err) {
		a.Equal(KindInvalid, Kind(err))
	}
}

// The kernel must agree that a name and its slash/NUL-decorated variants
// denote the same queue.
func TestNameEquivalence(t *testing.T) {
	a := assert.New(t)
	const name = "go-posixmq-test-names"
	variants := [][]byte{
		[]byte(name),
		[]byte("/" + name),
		[]byte(name + "\x00"),
		[]byte("/" + name + "\x00"),
	}
	defer Unlink(name)
	q, err := ReadWrite().CreateNew().Capacity(1).MaxMsgLen(8).Open(name)
	if !a.NoError(err) {
		return
	}
	defer q.Close()
	for _, variant := range variants {
		other, err := ReadOnly().Existing().Open(string(variant))
		if a.NoError(err, "variant %q", variant) {
			other.Close()
		}
	}
}
