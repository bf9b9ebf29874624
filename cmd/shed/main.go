package main

import (
	"fmt"
	"os"

	"github.com/modu-ai/shed/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "shed:", err)
		os.Exit(1)
	}
}
