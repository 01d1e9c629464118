// Command lazyir inspects logical query plans in tree and arena form.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/lazyir/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
