//go:build ignore

// Standalone tool: dump the seeded catalog as JSON, for frontend fixtures
// or eyeballing the seed data.
//
//	go run scripts/export_catalog.go [out.json]
package main

import (
	"encoding/json"
	"log"
	"os"

	"animebharat/catalog"
)

func main() {
	out := os.Stdout
	if len(os.Args) > 1 {
		f, err := os.Create(os.Args[1])
		if err != nil {
			log.Fatalf("create %s: %v", os.Args[1], err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog.Default().All()); err != nil {
		log.Fatalf("encode catalog: %v", err)
	}
}
