// Copyright 2019 Aleksandr Demakin. All rights reserved.

package main

import (
	"context"
	"flag"
	"fmt"
	"syscall"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	posixmq "github.com/nxgtw/go-posixmq"
)

func registerPlatformCommands() {
	subcommands.Register(&mergeCmd{}, "")
}

// mergeCmd multiplexes several source queues into one destination queue
// with epoll, a demonstration of using queue descriptors with readiness
// polling.
type mergeCmd struct{}

func (*mergeCmd) Name() string     { return "merge" }
func (*mergeCmd) Synopsis() string { return "merge messages from several queues into one" }
func (*mergeCmd) Usage() string {
	return `merge <dst> <src>...:
  Forward messages from the source queues to the destination queue,
  keeping priorities. Runs until interrupted.
`
}
func (*mergeCmd) SetFlags(f *flag.FlagSet) {}

func (*mergeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		logrus.Error("merge: need a destination and at least one source")
		return subcommands.ExitUsageError
	}
	dst, err := posixmq.WriteOnly().Create().Mode(0666).Open(f.Arg(0))
	if err != nil {
		logrus.Errorf("merge: open %s: %v", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer dst.Close()

	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		logrus.Errorf("merge: epoll_create1: %v", err)
		return subcommands.ExitFailure
	}
	defer unix.Close(epfd)

	// Sources must be non-blocking: with edge-triggered epoll each
	// wakeup has to drain the queue completely.
	srcs := make(map[int]*posixmq.Queue, f.NArg()-1)
	maxMsgLen := 0
	for _, name := range f.Args()[1:] {
		src, err := posixmq.ReadOnly().Nonblocking().Open(name)
		if err != nil {
			logrus.Errorf("merge: open %s: %v", name, err)
			return subcommands.ExitFailure
		}
		defer src.Close()
		if l := src.Attributes().MaxMsgLen; l > maxMsgLen {
			maxMsgLen = l
		}
		event := unix.EpollEvent{Events: unix.EPOLLIN | unix.EPOLLET, Fd: int32(src.Fd())}
		if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, src.Fd(), &event); err != nil {
			logrus.Errorf("merge: epoll_ctl %s: %v", name, err)
			return subcommands.ExitFailure
		}
		srcs[src.Fd()] = src
	}

	buf := make([]byte, maxMsgLen)
	events := make([]unix.EpollEvent, len(srcs))
	for {
		n, err := unix.EpollWait(epfd, events, -1)
		if err != nil {
			if err == syscall.EINTR {
				continue
			}
			logrus.Errorf("merge: epoll_wait: %v", err)
			return subcommands.ExitFailure
		}
		for _, event := range events[:n] {
			src := srcs[int(event.Fd)]
			for {
				length, prio, err := src.Receive(buf)
				if err != nil {
					if posixmq.Kind(err) == posixmq.KindWouldBlock {
						break
					}
					logrus.Errorf("merge: %v", err)
					return subcommands.ExitFailure
				}
				if err := dst.Send(buf[:length], prio); err != nil {
					logrus.Errorf("merge: forward: %v", err)
					return subcommands.ExitFailure
				}
				fmt.Printf("%3d\t%s\n", prio, buf[:length])
			}
		}
	}
}
