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

type receiveCmd struct {
	drain bool
}

func (*receiveCmd) Name() string     { return "receive" }
func (*receiveCmd) Synopsis() string { return "receive messages from a queue and print them" }
func (*receiveCmd) Usage() string {
	return `receive <name>:
  Print messages from the queue as "prio<TAB>message" lines. Blocks
  waiting for more messages; with -drain, stops once the queue is empty.
`
}

func (c *receiveCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.drain, "drain", false, "stop when the queue is empty instead of blocking")
}

func (c *receiveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		logrus.Error("receive: exactly one queue name required")
		return subcommands.ExitUsageError
	}
	opts := posixmq.ReadOnly()
	if c.drain {
		opts.Nonblocking()
	}
	q, err := opts.Open(f.Arg(0))
	if err != nil {
		logrus.Errorf("receive: open %s: %v", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer q.Close()

	buf := make([]byte, q.Attributes().MaxMsgLen)
	for {
		length, prio, err := q.Receive(buf)
		if err != nil {
			if c.drain && posixmq.Kind(err) == posixmq.KindWouldBlock {
				return subcommands.ExitSuccess
			}
			logrus.Errorf("receive: %v", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%3d\t%s\n", prio, buf[:length])
	}
}
