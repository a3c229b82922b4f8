package prompt

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
)

func TestStatic(t *testing.T) {
	ok, err := Static(true).Confirm(context.Background(), ConfirmConfig{Message: "overwrite?"})
	if err != nil || !ok {
		t.Fatalf("expected yes, got %v %v", ok, err)
	}
	ok, err = Static(false).Confirm(context.Background(), ConfirmConfig{})
	if err != nil || ok {
		t.Fatalf("expected no, got %v %v", ok, err)
	}
}

func TestConfirmHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewSurveyConfirmer().Confirm(ctx, ConfirmConfig{Message: "overwrite?"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := Static(true).Confirm(ctx, ConfirmConfig{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	if err := translateSurveyErr(fmt.Errorf("ask: %w", terminal.InterruptErr)); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	other := errors.New("boom")
	if err := translateSurveyErr(other); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}
