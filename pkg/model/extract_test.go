package model_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-popogen/pkg/model"
	"github.com/goliatone/go-popogen/pkg/testsupport"
)

func TestExtract_PetstoreGolden(t *testing.T) {
	root := testsupport.LoadTree(t, filepath.Join("testdata", "petstore.json"))

	models, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	goldenPath := filepath.Join("testdata", "petstore_models.golden.json")
	testsupport.WriteGolden(t, goldenPath, models)
	want := testsupport.MustLoadModels(t, goldenPath)

	if diff := testsupport.CompareGolden(want, models); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_SimpleModel(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{"Pet":{"properties":{"name":{"type":"string"},"age":{"type":"integer","default":3}}}}}`)

	models, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := []pkgmodel.Model{
		{
			Name: "Pet",
			Properties: []pkgmodel.PropertyModel{
				{Name: "name", TargetType: pkgmodel.TypeText},
				{Name: "age", TargetType: pkgmodel.TypeInteger},
			},
			Defaults: []pkgmodel.Default{
				{Name: "age", Value: "3"},
			},
			ImportEnum: false,
		},
	}
	if diff := cmp.Diff(want, models); diff != "" {
		t.Fatalf("models mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_StringDefaultIsQuoted(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{"Car":{"properties":{"color":{"type":"string","default":"red"}}}}}`)

	models, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got := models[0].Defaults[0].Value; got != "'red'" {
		t.Fatalf("expected quoted default 'red', got %q", got)
	}
}

func TestExtract_NonStringDefaults(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{"D":{"properties":{
		"ratio":{"type":"number","default":1e3},
		"flag":{"type":"boolean","default":true},
		"meta":{"type":"object","default":{"k":"it's","n":[1,null]}},
		"code":{"type":"integer","default":"7"},
		"label":{"type":"string","default":5}
	}}}}`)

	models, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	want := []pkgmodel.Default{
		{Name: "ratio", Value: "1e3"},
		{Name: "flag", Value: "True"},
		{Name: "meta", Value: `{'k': 'it\'s', 'n': [1, None]}`},
		{Name: "code", Value: "7"},
		{Name: "label", Value: "'5'"},
	}
	if diff := cmp.Diff(want, models[0].Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_EnumProperty(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{"Car":{"properties":{"color":{"type":"string","enum":["red","green"]}}}}}`)

	models, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	model := models[0]
	want := &pkgmodel.Enum{
		Name:      "ColorTypes",
		Values:    "red green",
		ValueList: []string{"red", "green"},
	}
	if diff := cmp.Diff(want, model.Properties[0].Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if !model.ImportEnum {
		t.Fatalf("expected import_enum to be true")
	}
}

func TestExtract_EnumValuesWithSpacesStayDistinct(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{"A":{"properties":{"size":{"type":"string","enum":["extra large","small",3]}}}}}`)

	models, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	enum := models[0].Properties[0].Enum
	if enum.Values != "extra large small 3" {
		t.Fatalf("unexpected joined values %q", enum.Values)
	}
	if diff := cmp.Diff([]string{"extra large", "small", "3"}, enum.ValueList); diff != "" {
		t.Fatalf("value list mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_TypeTable(t *testing.T) {
	cases := map[string]pkgmodel.TargetType{
		"string":  pkgmodel.TypeText,
		"integer": pkgmodel.TypeInteger,
		"number":  pkgmodel.TypeFloat,
		"object":  pkgmodel.TypeGeneric,
		"array":   pkgmodel.TypeList,
		"boolean": pkgmodel.TypeBool,
		"null":    pkgmodel.TypeNone,
	}
	if len(cases) != len(pkgmodel.SchemaTypes()) {
		t.Fatalf("type table covers %d types, test covers %d", len(pkgmodel.SchemaTypes()), len(cases))
	}

	for schemaType, want := range cases {
		t.Run(schemaType, func(t *testing.T) {
			root := testsupport.MustDecodeJSON(t, `{"definitions":{"T":{"properties":{"p":{"type":"`+schemaType+`"}}}}}`)
			models, err := pkgmodel.Extract(root)
			if err != nil {
				t.Fatalf("extract: %v", err)
			}
			if got := models[0].Properties[0].TargetType; got != want {
				t.Fatalf("expected %q, got %q", want, got)
			}
		})
	}

	for _, schemaType := range []string{"tuple", "String", "", "int"} {
		t.Run("unsupported_"+schemaType, func(t *testing.T) {
			root := testsupport.MustDecodeJSON(t, `{"definitions":{"T":{"properties":{"p":{"type":"`+schemaType+`"}}}}}`)
			_, err := pkgmodel.Extract(root)
			if !errors.Is(err, pkgmodel.ErrUnsupportedType) {
				t.Fatalf("expected ErrUnsupportedType, got %v", err)
			}
		})
	}
}

func TestExtract_UnsupportedTypeAbortsWholeRun(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{
		"Ok":{"properties":{"a":{"type":"string"}}},
		"Bad":{"properties":{"b":{"type":"integer"},"c":{"type":"tuple"}}}
	}}`)

	models, err := pkgmodel.Extract(root)
	if models != nil {
		t.Fatalf("expected no models, got %d", len(models))
	}

	var typeErr *pkgmodel.UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnsupportedTypeError, got %T: %v", err, err)
	}
	want := pkgmodel.UnsupportedTypeError{Definition: "Bad", Property: "c", Type: "tuple"}
	if diff := cmp.Diff(want, *typeErr); diff != "" {
		t.Fatalf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_NonStringTypeIsUnsupported(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{"T":{"properties":{"p":{"type":["string","null"]}}}}}`)

	_, err := pkgmodel.Extract(root)
	var typeErr *pkgmodel.UnsupportedTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if typeErr.Type != "['string', 'null']" {
		t.Fatalf("unexpected type label %q", typeErr.Type)
	}
}

func TestExtract_MissingFields(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		field   string
		path    []string
	}{
		{name: "definitions", payload: `{"$defs":{}}`, field: "definitions"},
		{name: "properties", payload: `{"definitions":{"A":{"title":"a"}}}`, field: "properties", path: []string{"definitions", "A"}},
		{name: "type", payload: `{"definitions":{"A":{"properties":{"x":{"default":1}}}}}`, field: "type", path: []string{"definitions", "A", "properties", "x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pkgmodel.Extract(testsupport.MustDecodeJSON(t, tc.payload))
			if !errors.Is(err, pkgmodel.ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
			var missing *pkgmodel.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %T", err)
			}
			if missing.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, missing.Field)
			}
			if diff := cmp.Diff(tc.path, missing.Path); diff != "" {
				t.Fatalf("path mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_WrongShapes(t *testing.T) {
	payloads := []string{
		`[]`,
		`{"definitions":[]}`,
		`{"definitions":{"A":"nope"}}`,
		`{"definitions":{"A":{"properties":[]}}}`,
		`{"definitions":{"A":{"properties":{"x":true}}}}`,
		`{"definitions":{"A":{"properties":{"x":{"type":"string","enum":"red"}}}}}`,
	}
	for _, payload := range payloads {
		_, err := pkgmodel.Extract(testsupport.MustDecodeJSON(t, payload))
		if !errors.Is(err, pkgmodel.ErrFieldType) {
			t.Fatalf("%s: expected ErrFieldType, got %v", payload, err)
		}
	}
}

func TestExtract_PreservesDocumentOrder(t *testing.T) {
	root := testsupport.MustDecodeJSON(t, `{"definitions":{
		"Zebra":{"properties":{"z":{"type":"string","default":"z"},"a":{"type":"string"},"m":{"type":"integer","default":1}}},
		"Apple":{"properties":{}},
		"Mango":{"properties":{"k":{"type":"null"}}}
	}}`)

	models, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	var names []string
	for _, m := range models {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"Zebra", "Apple", "Mango"}, names); diff != "" {
		t.Fatalf("definition order mismatch (-want +got):\n%s", diff)
	}

	var props, defaults []string
	for _, p := range models[0].Properties {
		props = append(props, p.Name)
	}
	for _, d := range models[0].Defaults {
		defaults = append(defaults, d.Name)
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, props); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"z", "m"}, defaults); diff != "" {
		t.Fatalf("default order mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_DefaultsSubsetAndEnumImport(t *testing.T) {
	models, err := pkgmodel.Extract(testsupport.LoadTree(t, filepath.Join("testdata", "petstore.json")))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	for _, m := range models {
		position := make(map[string]int, len(m.Properties))
		for i, p := range m.Properties {
			position[p.Name] = i
		}
		last := -1
		for _, d := range m.Defaults {
			idx, ok := position[d.Name]
			if !ok {
				t.Fatalf("%s: default %q has no matching property", m.Name, d.Name)
			}
			if idx <= last {
				t.Fatalf("%s: default %q out of property order", m.Name, d.Name)
			}
			last = idx
		}
		if m.ImportEnum != m.HasEnum() {
			t.Fatalf("%s: import_enum=%v but HasEnum=%v", m.Name, m.ImportEnum, m.HasEnum())
		}
	}
}

func TestExtract_Idempotent(t *testing.T) {
	root := testsupport.LoadTree(t, filepath.Join("testdata", "petstore.json"))

	first, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("first extract: %v", err)
	}
	second, err := pkgmodel.Extract(root)
	if err != nil {
		t.Fatalf("second extract: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("extraction is not repeatable (-first +second):\n%s", diff)
	}
}

func TestEnumName(t *testing.T) {
	cases := map[string]string{
		"color":    "ColorTypes",
		"Color":    "ColorTypes",
		"fooBar":   "FooBarTypes",
		"_private": "_privateTypes",
		"9lives":   "9livesTypes",
		"émoji":    "émojiTypes",
		"état":     "étatTypes",
		"ñame":     "ñameTypes",
		"a":        "ATypes",
		"":         "Types",
	}
	for in, want := range cases {
		if got := pkgmodel.EnumName(in); got != want {
			t.Errorf("EnumName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestError_Messages(t *testing.T) {
	missing := &pkgmodel.MissingFieldError{Path: []string{"definitions", "a/b"}, Field: "properties"}
	if got, want := missing.Error(), `model: #/definitions/a~1b: missing required field "properties"`; got != want {
		t.Fatalf("unexpected message %q, want %q", got, want)
	}

	unsupported := &pkgmodel.UnsupportedTypeError{Definition: "Pet", Property: "x", Type: "tuple"}
	if got, want := unsupported.Error(), `model: definition "Pet" property "x": unsupported type "tuple"`; got != want {
		t.Fatalf("unexpected message %q, want %q", got, want)
	}
}
