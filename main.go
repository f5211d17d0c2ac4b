package main

import (
	"os"

	"github.com/volleyping/volley/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
