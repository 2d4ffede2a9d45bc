// Copyright 2019 Aleksandr Demakin. All rights reserved.

//go:build linux || freebsd

package posixmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestCloseOnExecDefault(t *testing.T) {
	a := assert.New(t)
	q := tmpMq(t, "go-posixmq-test-cloexec")
	defer q.Close()
	a.True(q.CloseOnExec(), "queue descriptors are close-on-exec by default")
}

func TestSetCloseOnExec(t *testing.T) {
	a := assert.New(t)
	q := tmpMq(t, "go-posixmq-test-setcloexec")
	defer q.Close()

	a.NoError(q.SetCloseOnExec(false))
	a.False(q.CloseOnExec())
	a.NoError(q.SetCloseOnExec(true))
	a.True(q.CloseOnExec())
}

func TestDup(t *testing.T) {
	a := assert.New(t)
	q := tmpMq(t, "go-posixmq-test-dup")

	dup, err := q.Dup()
	if !a.NoError(err) {
		q.Close()
		return
	}
	defer dup.Close()
	a.NotEqual(q.Fd(), dup.Fd())
	a.True(dup.CloseOnExec())

	// both descriptors refer to the same queue
	a.NoError(q.Send([]byte("one"), 0))
	a.NoError(dup.Send([]byte("two"), 0))
	a.Equal(2, dup.Attributes().CurrentMessages)

	// the duplicate outlives the original
	a.NoError(q.Close())
	buf := make([]byte, 64)
	length, _, err := dup.Receive(buf)
	if a.NoError(err) {
		a.Equal("one", string(buf[:length]))
	}
}

func TestDupOnClosed(t *testing.T) {
	a := assert.New(t)
	q := tmpMq(t, "go-posixmq-test-dupclosed")
	a.NoError(q.Close())
	_, err := q.Dup()
	a.Error(err)
}

func TestFromFd(t *testing.T) {
	a := assert.New(t)
	q := tmpMq(t, "go-posixmq-test-fromfd")

	wrapped := FromFd(q.Fd())
	a.NoError(wrapped.Send([]byte("via fd"), 4))
	buf := make([]byte, 64)
	length, prio, err := wrapped.Receive(buf)
	if a.NoError(err) {
		a.Equal("via fd", string(buf[:length]))
		a.Equal(4, prio)
	}
	a.NoError(wrapped.Close())
}

// The fd must be pollable: a queue with a pending message polls readable.
func TestFdPollsReadable(t *testing.T) {
	a := assert.New(t)
	q := tmpMq(t, "go-posixmq-test-poll")
	defer q.Close()

	fds := []unix.PollFd{{Fd: int32(q.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if a.NoError(err) {
		a.Equal(0, n, "empty queue must not poll readable")
	}
	a.NoError(q.Send([]byte("ready"), 0))
	fds[0].Revents = 0
	n, err = unix.Poll(fds, 1000)
	if a.NoError(err) {
		a.Equal(1, n)
		a.NotZero(fds[0].Revents & unix.POLLIN)
	}
}
