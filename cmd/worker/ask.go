package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/docqa-team/docqa-backend/config"
	"github.com/docqa-team/docqa-backend/internal/bootstrap"
)

// RunAsk ingests the given text files into a fresh in-memory index and asks
// one question against them. One-shot; nothing survives the process.
func RunAsk(args []string) {
	if len(args) < 2 {
		log.Fatal("usage: worker ask <question> <file> [file...]")
	}
	question := args[0]
	files := args[1:]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	core := bootstrap.BuildCore(cfg)
	ctx := context.Background()

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("read %s: %v", path, err)
		}
		name := filepath.Base(path)
		res, err := core.Ingest.Ingest(ctx, name, string(data), "")
		if err != nil {
			log.Fatalf("ingest %s: %v", path, err)
		}
		log.Printf("ingested %s: %d chunks", name, res.ChunksAdded)
	}

	resp, err := core.Query.Query(ctx, question, 0)
	if err != nil {
		log.Fatalf("query: %v", err)
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		log.Fatalf("marshal response: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))
}
