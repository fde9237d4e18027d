package main

import (
	"fmt"
	"os"

	"github.com/rony4d/go-bitpack/cmd/bitpack/launcher"
)

func main() {
	if err := launcher.Launch(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
