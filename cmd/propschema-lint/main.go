package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errViolations) {
			fmt.Fprintf(os.Stderr, "propschema-lint: %v\n", err)
		}
		os.Exit(1)
	}
}
