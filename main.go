package main

import (
	"os"

	"github.com/sebastianahumada1/studyapp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
