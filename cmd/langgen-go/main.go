package main

import (
	"os"

	"langgen-go/cmd/langgen-go/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
