// Copyright 2019 Aleksandr Demakin. All rights reserved.

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	posixmq "github.com/nxgtw/go-posixmq"
)

const limitsQueueName = "go-posixmq-limits-probe"

// limitsCmd discovers the OS limits for message queues empirically, by
// creating throwaway queues and bisecting the values the kernel accepts.
type limitsCmd struct{}

func (*limitsCmd) Name() string     { return "limits" }
func (*limitsCmd) Synopsis() string { return "probe the OS limits for message queues" }
func (*limitsCmd) Usage() string {
	return `limits:
  Print the default and maximum queue attributes of this system, found
  by probing with throwaway queues.
`
}
func (*limitsCmd) SetFlags(f *flag.FlagSet) {}

// btry returns the largest value in [low, high] accepted by f, or
// low-1 if none is.
func btry(low, high int, f func(int) bool) int {
	for low <= high {
		mid := low + (high-low)/2
		if f(mid) {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return high
}

func probeCreate(capacity, maxMsgLen int) bool {
	q, err := posixmq.ReadWrite().
		CreateNew().
		Mode(0700).
		Capacity(capacity).
		MaxMsgLen(maxMsgLen).
		Open(limitsQueueName)
	if err != nil {
		return false
	}
	q.Close()
	posixmq.Unlink(limitsQueueName)
	return true
}

func (*limitsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// Defaults: create with no attributes and read them back.
	posixmq.Unlink(limitsQueueName)
	q, err := posixmq.ReadWrite().CreateNew().Mode(0700).Open(limitsQueueName)
	if err != nil {
		logrus.Errorf("limits: create probe queue: %v", err)
		return subcommands.ExitFailure
	}
	attrs := q.Attributes()
	fmt.Printf("default capacity:       %d\n", attrs.Capacity)
	fmt.Printf("default max msg length: %d\n", attrs.MaxMsgLen)
	buf := make([]byte, attrs.MaxMsgLen)

	// Highest accepted send priority. The kernel rejects anything above
	// its ceiling with an invalid-input error, so bisect on that.
	maxPrio := btry(0, 1<<30, func(prio int) bool {
		err := q.SendTimeout([]byte("x"), prio, 0)
		if err != nil && posixmq.Kind(err) == posixmq.KindInvalid {
			return false
		}
		q.ReceiveTimeout(buf, 0)
		return true
	})
	fmt.Printf("max priority:           %d\n", maxPrio)

	emptyOk := q.SendTimeout(nil, 0, 0) == nil
	if emptyOk {
		q.ReceiveTimeout(buf, 0)
	}
	fmt.Printf("empty messages:         %v\n", emptyOk)
	q.Close()
	posixmq.Unlink(limitsQueueName)

	// Creation-time ceilings. These depend on privileges as well as on
	// the hard limits, so an unprivileged run reports the soft ones.
	maxCapacity := btry(1, 1<<20, func(capacity int) bool {
		return probeCreate(capacity, 1)
	})
	fmt.Printf("max capacity:           %d\n", maxCapacity)
	maxMsgLen := btry(1, 1<<24, func(maxMsgLen int) bool {
		return probeCreate(1, maxMsgLen)
	})
	fmt.Printf("max msg length:         %d\n", maxMsgLen)
	return subcommands.ExitSuccess
}
