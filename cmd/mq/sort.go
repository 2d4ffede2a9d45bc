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

// sortCmd abuses priorities to sort its arguments by length: the queue
// hands messages back longest first, equal lengths in argument order.
type sortCmd struct{}

func (*sortCmd) Name() string     { return "sort" }
func (*sortCmd) Synopsis() string { return "sort arguments by length using a throwaway queue" }
func (*sortCmd) Usage() string {
	return `sort <word>...:
  Print the words longest first. A demonstration of priority ordering,
  not a sorting tool.
`
}
func (*sortCmd) SetFlags(f *flag.FlagSet) {}

func (*sortCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) == 0 {
		return subcommands.ExitSuccess
	}
	maxLen := 0
	for _, arg := range args {
		if len(arg) > maxLen {
			maxLen = len(arg)
		}
	}
	name := []byte("/sort\x00")
	q, err := posixmq.ReadWrite().
		CreateNew().
		Nonblocking().
		Mode(0700).
		Capacity(len(args)).
		MaxMsgLen(maxLen).
		OpenCStr(name)
	if err != nil {
		logrus.Errorf("sort: create queue: %v", err)
		return subcommands.ExitFailure
	}
	defer posixmq.UnlinkCStr(name)

	for _, arg := range args {
		if err := q.Send([]byte(arg), len(arg)); err != nil {
			logrus.Errorf("sort: send %q: %v", arg, err)
			q.Close()
			return subcommands.ExitFailure
		}
	}
	it := q.IntoIter()
	for {
		msg, _, ok := it.Next()
		if !ok {
			return subcommands.ExitSuccess
		}
		fmt.Printf("%s\n", msg)
	}
}
