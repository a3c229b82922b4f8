package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-popogen/internal/logger"
	"github.com/goliatone/go-popogen/pkg/model"
	"github.com/goliatone/go-popogen/pkg/render/template"
	"github.com/goliatone/go-popogen/pkg/render/templates"
)

// DefaultExtension is the suffix appended to each model name.
const DefaultExtension = ".py"

// Option customises a Driver.
type Option func(*Driver)

// WithTemplateName selects the template rendered for every model.
func WithTemplateName(name string) Option {
	return func(d *Driver) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			d.templateName = trimmed
		}
	}
}

// WithExtension sets the output file suffix. A missing leading dot is added.
func WithExtension(ext string) Option {
	return func(d *Driver) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		d.extension = trimmed
	}
}

// WithLogger attaches a logger for per file progress.
func WithLogger(l logger.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// Driver renders one file per model through a template engine and hands the
// output to a Sink.
type Driver struct {
	engine       template.TemplateRenderer
	sink         Sink
	templateName string
	extension    string
	logger       logger.Logger
}

// NewDriver wires an engine and a sink together.
func NewDriver(engine template.TemplateRenderer, sink Sink, options ...Option) (*Driver, error) {
	if engine == nil {
		return nil, errors.New("render: template engine is required")
	}
	if sink == nil {
		return nil, errors.New("render: sink is required")
	}

	d := &Driver{
		engine:       engine,
		sink:         sink,
		templateName: templates.ClassTemplate,
		extension:    DefaultExtension,
		logger:       logger.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d, nil
}

// FileName returns the output name used for a model.
func (d *Driver) FileName(m model.Model) string {
	return m.Name + d.extension
}

// RenderAll renders models in order and commits the sink once every model
// has been written. The first failure stops the run and discards whatever
// the sink staged; the names handed to the sink before the failure are
// returned with the error.
func (d *Driver) RenderAll(ctx context.Context, models []model.Model) ([]string, error) {
	written := make([]string, 0, len(models))

	for _, m := range models {
		if err := ctx.Err(); err != nil {
			return written, d.abort(err)
		}

		name := d.FileName(m)
		content, err := d.engine.RenderTemplate(d.templateName, map[string]any{"model": m})
		if err != nil {
			return written, d.abort(&RenderError{Model: m.Name, Err: err})
		}

		if err := d.sink.WriteFile(ctx, name, []byte(content)); err != nil {
			return written, d.abort(&RenderError{Model: m.Name, File: name, Err: err})
		}
		d.logger.Debug("rendered %s", name)
		written = append(written, name)
	}

	if err := d.sink.Commit(ctx); err != nil {
		return written, d.abort(fmt.Errorf("render: commit: %w", err))
	}
	return written, nil
}

func (d *Driver) abort(cause error) error {
	if err := d.sink.Discard(); err != nil {
		d.logger.Warn("render: discard staged output: %v", err)
	}
	return cause
}
