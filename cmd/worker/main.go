package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: worker ask <question> <file> [file...]")
	}

	switch os.Args[1] {
	case "ask":
		RunAsk(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
