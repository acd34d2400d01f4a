package main

import (
	"fmt"
	"os"

	"github.com/wahlandcase/attuned.jirarelease/internal/termfix"
)

func main() {
	termfix.Apply()

	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
