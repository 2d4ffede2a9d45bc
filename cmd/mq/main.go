// Copyright 2019 Aleksandr Demakin. All rights reserved.

// Binary mq is a command line tool for POSIX message queues.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&rmCmd{}, "")
	subcommands.Register(&sendCmd{}, "")
	subcommands.Register(&receiveCmd{}, "")
	subcommands.Register(&sortCmd{}, "")
	subcommands.Register(&limitsCmd{}, "")
	registerPlatformCommands()

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
