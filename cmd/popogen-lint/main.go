// Command popogen-lint reports every definition and property that popogen
// would refuse to convert, across one or more schema documents.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	pkgjsonschema "github.com/goliatone/go-popogen/pkg/jsonschema"
	"github.com/goliatone/go-popogen/pkg/model"
	pkgopenapi "github.com/goliatone/go-popogen/pkg/openapi"
	"github.com/goliatone/go-popogen/pkg/orchestrator"
	"github.com/goliatone/go-popogen/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("popogen-lint", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("format", "", "force the input format (jsonschema, openapi)")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <paths...>\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(stderr, "\nLint schema definitions for constructs popogen cannot convert.\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	paths := flags.Args()
	if len(paths) == 0 {
		flags.Usage()
		return 1
	}

	registry := orchestrator.NewAdapterRegistry()
	// Document validation is skipped so a broken definition is still
	// reported next to its siblings.
	registry.MustRegister(pkgopenapi.NewAdapter(nil))
	registry.MustRegister(pkgjsonschema.NewAdapter())

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, registry, *format, path)
		if err != nil {
			fmt.Fprintf(stderr, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		fmt.Fprintf(stdout, "%d file(s) ok\n", len(paths))
		return 0
	}

	sort.SliceStable(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintFile(ctx context.Context, registry *orchestrator.AdapterRegistry, format, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := schema.NewDocument(schema.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	root, err := schema.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	var adapter schema.FormatAdapter
	if format != "" {
		if adapter, err = registry.Get(format); err != nil {
			return nil, err
		}
	} else if adapter = registry.Detect(doc.Source(), root); adapter == nil {
		return nil, fmt.Errorf("unable to detect format (registered: %s)", strings.Join(registry.List(), ", "))
	}

	defs, err := adapter.Definitions(ctx, doc, root)
	if err != nil {
		return nil, err
	}
	if defs.Node == nil {
		v := violation{file: path, location: "#", message: "missing definitions mapping"}
		if n := len(defs.Path); n > 0 {
			v.location = formatLocation(defs.Path[:n-1])
			v.message = fmt.Sprintf("missing %q mapping", defs.Path[n-1])
		}
		return []violation{v}, nil
	}

	var result []violation
	for _, problem := range model.Check(defs.Node, defs.Path...) {
		result = append(result, violation{
			file:     path,
			location: locate(defs.Path, problem),
			message:  problem.Error(),
		})
	}
	return result, nil
}

func locate(base []string, err error) string {
	var (
		missing     *model.MissingFieldError
		wrongType   *model.FieldTypeError
		unsupported *model.UnsupportedTypeError
	)
	switch {
	case errors.As(err, &missing):
		return formatLocation(missing.Path)
	case errors.As(err, &wrongType):
		return formatLocation(wrongType.Path)
	case errors.As(err, &unsupported):
		return formatLocation(appendPath(base, unsupported.Definition, "properties", unsupported.Property))
	}
	return formatLocation(base)
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}

func formatLocation(path []string) string {
	if len(path) == 0 {
		return "#"
	}
	return strings.Join(path, " > ")
}
