// main is the entry point for the contriboard CLI.
package main

import (
	"github.com/contriboard/contriboard/cmd"
	"github.com/contriboard/contriboard/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
