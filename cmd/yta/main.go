package main

import (
	"io"
	"log"
	"os"
)

func main() {
	if os.Getenv("YTA_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	root := newRootCommand()
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
