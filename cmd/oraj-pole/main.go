package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"oraj-pole/internal/cli"
)

func main() {
	err := cli.Run(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
