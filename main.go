package main

import (
	"os"

	"github.com/leefowlercu/weatherfile/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
