// Command kilroyctl is a thin command-line driver for kilroyws, useful
// for poking at a server speaking the protocol from a shell.
package main

import (
	"fmt"
	"os"

	"github.com/kilroybot/kilroyws/cmd/kilroyctl/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
