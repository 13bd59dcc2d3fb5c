package main

import (
	"os"

	"github.com/simonbystrom/teammate/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
