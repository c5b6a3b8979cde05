package main

import (
	"os"

	"github.com/morepeace/manyora/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
