// Package main provides the entry point for the planwright CLI.
package main

import (
	"fmt"
	"os"

	"github.com/avelisek/planwright/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
