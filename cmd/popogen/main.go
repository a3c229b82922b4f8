// Command popogen converts the definitions of a JSON Schema (or OpenAPI)
// document into one plain old Python class file per definition.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-popogen/internal/jsonschema/loader"
	"github.com/goliatone/go-popogen/internal/logger"
	"github.com/goliatone/go-popogen/pkg/config"
	pkgjsonschema "github.com/goliatone/go-popogen/pkg/jsonschema"
	"github.com/goliatone/go-popogen/pkg/orchestrator"
	"github.com/goliatone/go-popogen/pkg/prompt"
	"github.com/goliatone/go-popogen/pkg/render"
	"github.com/goliatone/go-popogen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-popogen/pkg/render/templates"
	"github.com/goliatone/go-popogen/pkg/schema"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := newFlagSet(stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 1
	}

	log := logger.New(stderr, "INFO")
	if err := generate(ctx, flags, stdout, stderr, log); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	flags := pflag.NewFlagSet("popogen", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Converts JSON Schema to Plain Old Python Object")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: popogen [flags] <json_schema_file>")
		flags.PrintDefaults()
	}

	flags.StringP("templates-folder", "t", "", "path to templates folder (bundled templates when empty)")
	flags.StringP("output-folder", "o", config.DefaultOutputFolder, "path to folder output")
	flags.StringP("config", "c", "", "path to config file")
	flags.String("extension", config.DefaultExtension, "extension of generated files")
	flags.String("template", config.DefaultTemplateName, "template rendered for each definition")
	flags.String("format", "", "force the input format (jsonschema, openapi)")
	flags.String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	flags.Bool("allow-http", false, "allow http(s) schema locations")
	flags.Bool("stdout", false, "print generated files to stdout instead of writing them")
	flags.Bool("staged", false, "only move files into the output folder once every definition rendered")
	flags.Bool("check-writable", false, "verify the output folder is writable before rendering")
	flags.Bool("confirm-overwrite", false, "ask before overwriting existing files")
	return flags
}

func generate(ctx context.Context, flags *pflag.FlagSet, stdout, stderr io.Writer, log *logger.StdLogger) error {
	if flags.NArg() != 1 {
		flags.Usage()
		return errors.New("expected exactly one json_schema_file argument")
	}

	configPath, _ := flags.GetString("config")
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return err
	}
	if toStdout, _ := flags.GetBool("stdout"); toStdout {
		cfg.Output.Type = "stdout"
	}

	closeLog, err := configureLogger(log, cfg.Logging, stdout, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	src, err := schema.ParseSource(flags.Arg(0))
	if err != nil {
		return err
	}

	engine, err := newEngine(cfg.Templates)
	if err != nil {
		return err
	}

	sink, err := newSink(cfg.Output, stdout)
	if err != nil {
		return err
	}

	loaderOptions := []pkgjsonschema.LoaderOption{}
	if cfg.Input.AllowHTTP {
		loaderOptions = append(loaderOptions, pkgjsonschema.WithHTTPFallback(cfg.Input.RequestTimeout))
	}

	orch := orchestrator.New(
		orchestrator.WithLoader(loader.New(pkgjsonschema.NewLoaderOptions(loaderOptions...))),
		orchestrator.WithExternalRefs(cfg.Input.ExternalRefs),
		orchestrator.WithTemplateEngine(engine),
		orchestrator.WithTemplateName(cfg.Templates.Name),
		orchestrator.WithExtension(cfg.Output.Extension),
		orchestrator.WithSink(sink),
		orchestrator.WithLogger(log),
	)

	result, err := orch.Generate(ctx, orchestrator.Request{Source: src, Format: cfg.Input.Format})
	if err != nil {
		return err
	}
	log.Info("generated %d file(s): %s", len(result.Files), strings.Join(result.Files, ", "))
	return nil
}

func configureLogger(log *logger.StdLogger, cfg config.LoggingConfig, stdout, stderr io.Writer) (func(), error) {
	log.SetLevel(cfg.Level)

	switch strings.ToLower(cfg.Output) {
	case "stderr":
		log.SetOutput(stderr)
	case "stdout":
		log.SetOutput(stdout)
	default:
		file, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		log.SetOutput(file)
		return func() {
			log.SetOutput(stderr)
			_ = file.Close()
		}, nil
	}
	return func() {}, nil
}

func newEngine(cfg config.TemplatesConfig) (*gotemplate.Engine, error) {
	if cfg.Folder == "" {
		return gotemplate.New(gotemplate.WithFS(templates.FS()))
	}
	if err := readableDir(cfg.Folder); err != nil {
		return nil, err
	}
	return gotemplate.New(gotemplate.WithBaseDir(cfg.Folder))
}

func newSink(cfg config.OutputConfig, stdout io.Writer) (render.Sink, error) {
	if cfg.Type == "stdout" {
		return render.NewWriterSink(stdout), nil
	}

	dir, err := cfg.DirectoryOptions()
	if err != nil {
		return nil, err
	}
	if err := readableDir(dir.Path); err != nil {
		return nil, err
	}

	options := []render.DirectoryOption{
		render.WithStaging(dir.Staged),
		render.WithWritableCheck(dir.CheckWritable),
		render.WithFileMode(os.FileMode(dir.FileMode)),
	}
	if dir.ConfirmOverwrite {
		options = append(options, render.WithConfirmer(prompt.NewSurveyConfirmer()))
	}
	return render.NewDirectorySink(dir.Path, options...)
}

// readableDir rejects paths that are not existing, readable directories.
func readableDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("readable_dir:%s is not a valid path", path)
	}
	dir, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("readable_dir:%s is not a readable dir", path)
	}
	if _, err := dir.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		_ = dir.Close()
		return fmt.Errorf("readable_dir:%s is not a readable dir", path)
	}
	return dir.Close()
}
