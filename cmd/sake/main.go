// Package main provides the sake CLI for querying keepsake experiments.
package main

import (
	"os"

	"github.com/leapstack-labs/sake/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
