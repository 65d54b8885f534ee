package main

import (
	"fmt"
	"os"

	"benchpark/internal/command"
	"benchpark/pkg/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer log.Close() //nolint:errcheck

	rootCmd, err := command.NewRootCommand()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		return 1
	}

	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}
