package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	popogen "github.com/goliatone/go-popogen"
)

func main() {
	var (
		schemaPath = flag.String("schema", "pkg/model/testdata/petstore.json", "schema document to extract")
		outputPath = flag.String("output", "pkg/model/testdata/petstore_models.golden.json", "output path for the serialized models")
	)
	flag.Parse()

	models, err := popogen.ExtractFile(context.Background(), *schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to extract models: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode models: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outputPath, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d model(s) to %s\n", len(models), *outputPath)
}
