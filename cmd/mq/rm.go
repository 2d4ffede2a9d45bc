// Copyright 2019 Aleksandr Demakin. All rights reserved.

package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	posixmq "github.com/nxgtw/go-posixmq"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete message queues" }
func (*rmCmd) Usage() string {
	return `rm <name>...:
  Delete the named queues. Processes holding a descriptor keep using
  the queue until they close it.
`
}
func (*rmCmd) SetFlags(f *flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		logrus.Error("rm: no queue names given")
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, name := range f.Args() {
		if err := posixmq.Unlink(name); err != nil {
			logrus.Errorf("rm %s: %v", name, err)
			status = subcommands.ExitFailure
		}
	}
	return status
}
