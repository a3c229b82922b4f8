// Package prompt asks the operator yes/no questions before destructive
// steps such as overwriting generated files.
package prompt

import (
	"context"
	"errors"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the operator interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// ConfirmConfig configures a yes/no prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// Confirmer asks a yes/no question. Implementations must honour ctx before
// blocking on input.
type Confirmer interface {
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
}

// Option configures a SurveyConfirmer.
type Option func(*SurveyConfirmer)

// WithStdio routes prompts through the given streams instead of the
// process terminal.
func WithStdio(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) Option {
	return func(c *SurveyConfirmer) {
		c.opts = append(c.opts, survey.WithStdio(in, out, errOut))
	}
}

// SurveyConfirmer prompts on the terminal using survey.
type SurveyConfirmer struct {
	opts []survey.AskOpt
}

var _ Confirmer = (*SurveyConfirmer)(nil)

// NewSurveyConfirmer constructs a terminal backed Confirmer.
func NewSurveyConfirmer(options ...Option) *SurveyConfirmer {
	c := &SurveyConfirmer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

func (c *SurveyConfirmer) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	if err := survey.AskOne(prompt, &out, c.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

// Static answers every question with the same value. Useful for scripted
// runs and tests.
type Static bool

func (s Static) Confirm(ctx context.Context, _ ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(s), nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
