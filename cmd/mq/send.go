// Copyright 2019 Aleksandr Demakin. All rights reserved.

package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	posixmq "github.com/nxgtw/go-posixmq"
)

type sendCmd struct {
	prio int
}

func (*sendCmd) Name() string     { return "send" }
func (*sendCmd) Synopsis() string { return "send messages to a queue" }
func (*sendCmd) Usage() string {
	return `send <name> [<prio> <message>]...:
  Send the given priority/message pairs to the queue, creating it if
  needed. With no pairs, lines from stdin are sent with the -p priority.
`
}

func (c *sendCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.prio, "p", 0, "priority for messages read from stdin")
}

func (c *sendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		logrus.Error("send: no queue name given")
		return subcommands.ExitUsageError
	}
	name, pairs := f.Arg(0), f.Args()[1:]
	if len(pairs)%2 != 0 {
		logrus.Error("send: arguments must be <prio> <message> pairs")
		return subcommands.ExitUsageError
	}
	q, err := posixmq.WriteOnly().Create().Mode(0666).Open(name)
	if err != nil {
		logrus.Errorf("send: open %s: %v", name, err)
		return subcommands.ExitFailure
	}
	defer q.Close()

	if len(pairs) > 0 {
		for i := 0; i < len(pairs); i += 2 {
			prio, err := strconv.Atoi(pairs[i])
			if err != nil {
				logrus.Errorf("send: bad priority %q: %v", pairs[i], err)
				return subcommands.ExitUsageError
			}
			if err := q.Send([]byte(pairs[i+1]), prio); err != nil {
				logrus.Errorf("send: %v", err)
				return subcommands.ExitFailure
			}
		}
		return subcommands.ExitSuccess
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := q.Send(scanner.Bytes(), c.prio); err != nil {
			logrus.Errorf("send: %v", err)
			return subcommands.ExitFailure
		}
	}
	if err := scanner.Err(); err != nil {
		logrus.Errorf("send: read stdin: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
