package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	pkgjsonschema "github.com/goliatone/go-popogen/pkg/jsonschema"
)

const petSchema = `{"definitions":{"Pet":{"properties":{"name":{"type":"string"}}}}}`

func TestLoader_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pet.json")
	if err := os.WriteFile(path, []byte(petSchema), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(pkgjsonschema.NewLoaderOptions())
	doc, err := l.Load(context.Background(), pkgjsonschema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != petSchema {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoader_FileErrors(t *testing.T) {
	l := New(pkgjsonschema.NewLoaderOptions())
	dir := t.TempDir()

	if _, err := l.Load(context.Background(), pkgjsonschema.SourceFromFile(filepath.Join(dir, "missing.json"))); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := l.Load(context.Background(), pkgjsonschema.SourceFromFile(dir)); err == nil {
		t.Fatalf("expected error for directory source")
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := l.Load(context.Background(), pkgjsonschema.SourceFromFile(empty)); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestLoader_FS(t *testing.T) {
	files := fstest.MapFS{
		"schemas/pet.json": &fstest.MapFile{Data: []byte(petSchema)},
	}
	l := New(pkgjsonschema.NewLoaderOptions(pkgjsonschema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), pkgjsonschema.SourceFromFS("schemas/pet.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != petSchema {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), pkgjsonschema.SourceFromFS("../pet.json")); err == nil {
		t.Fatalf("expected error for invalid fs path")
	}
}

func TestLoader_HTTPDisabledByDefault(t *testing.T) {
	l := New(pkgjsonschema.NewLoaderOptions())
	src, err := pkgjsonschema.SourceFromURL("https://example.com/pet.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := l.Load(context.Background(), src); err == nil || !strings.Contains(err.Error(), "http support disabled") {
		t.Fatalf("expected http disabled error, got %v", err)
	}
}

func TestLoader_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pet.json":
			_, _ = w.Write([]byte(petSchema))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	l := New(pkgjsonschema.NewLoaderOptions(
		pkgjsonschema.WithHTTPClient(server.Client()),
		pkgjsonschema.WithHTTPFallback(5*time.Second),
	))

	src, err := pkgjsonschema.SourceFromURL(server.URL + "/pet.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != petSchema {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	missing, err := pkgjsonschema.SourceFromURL(server.URL + "/missing.json")
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	if _, err := l.Load(context.Background(), missing); err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pet.json")
	if err := os.WriteFile(path, []byte(petSchema), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(pkgjsonschema.NewLoaderOptions())
	if _, err := l.Load(ctx, pkgjsonschema.SourceFromFile(path)); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
