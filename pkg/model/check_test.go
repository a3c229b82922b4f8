package model_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-popogen/pkg/model"
	"github.com/goliatone/go-popogen/pkg/testsupport"
)

func TestCheck_ReportsEveryProblem(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{
		"definitions": {
			"Good": {"properties": {"a": {"type": "string"}}},
			"NoProps": {"title": "x"},
			"Mixed": {"properties": {
				"b": {"type": "date"},
				"c": {"default": 1},
				"d": {"type": "string", "enum": "x"},
				"e": {"type": "integer"}
			}},
			"Scalar": 3
		}
	}`)
	defs, _ := root.Get("definitions")

	problems := model.Check(defs, "definitions")
	if len(problems) != 5 {
		t.Fatalf("expected 5 problems, got %d: %v", len(problems), problems)
	}

	var missing *model.MissingFieldError
	if !errors.As(problems[0], &missing) || missing.Field != "properties" {
		t.Fatalf("expected missing properties first, got %v", problems[0])
	}
	if !errors.Is(problems[1], model.ErrUnsupportedType) {
		t.Fatalf("expected unsupported type second, got %v", problems[1])
	}
	if !errors.As(problems[2], &missing) || missing.Field != "type" {
		t.Fatalf("expected missing type third, got %v", problems[2])
	}
	if !errors.Is(problems[3], model.ErrFieldType) {
		t.Fatalf("expected enum shape error fourth, got %v", problems[3])
	}
	if !errors.Is(problems[4], model.ErrFieldType) {
		t.Fatalf("expected scalar definition error last, got %v", problems[4])
	}
}

func TestCheck_CleanDocumentMatchesExtract(t *testing.T) {
	root := testsupport.LoadTree(t, "testdata/petstore.json")
	defs, _ := root.Get("definitions")

	if problems := model.Check(defs, "definitions"); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
	if _, err := model.ExtractDefinitions(defs, "definitions"); err != nil {
		t.Fatalf("extract: %v", err)
	}
}

func TestCheck_NonObjectDefinitions(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions": []}`)
	defs, _ := root.Get("definitions")
	problems := model.Check(defs, "definitions")
	if len(problems) != 1 || !errors.Is(problems[0], model.ErrFieldType) {
		t.Fatalf("expected one field type error, got %v", problems)
	}
}
