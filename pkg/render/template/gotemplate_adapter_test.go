package template_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-popogen/pkg/model"
	"github.com/goliatone/go-popogen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-popogen/pkg/testsupport"
)

//go:embed testdata/templates/*.tpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}

	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}
}

func TestGoTemplateEngine_TrimBlocks(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("blocks", map[string]any{"items": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "blocks.golden"))
	if result != want {
		t.Fatalf("trim blocks mismatch\nwant: %q\n got: %q", want, result)
	}
}

func TestGoTemplateEngine_RepeatedRenderIsStable(t *testing.T) {
	engine := newEngine(t)
	data := map[string]any{"items": []string{"a", "b"}}

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "blocks.golden"))
	for i := 0; i < 3; i++ {
		result, err := engine.RenderTemplate("blocks", data)
		if err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
		if result != want {
			t.Fatalf("render %d mismatch\nwant: %q\n got: %q", i, want, result)
		}
	}
}

func TestGoTemplateEngine_TrimBlocksDisabled(t *testing.T) {
	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS), gotemplate.WithTrimBlocks(false))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	result, err := engine.RenderTemplate("blocks", map[string]any{"items": []string{"a"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "\n- a\n\ndone\n" {
		t.Fatalf("unexpected untrimmed output %q", result)
	}
}

func TestGoTemplateEngine_StructContextUsesJSONNames(t *testing.T) {
	engine := newEngine(t)

	data := map[string]any{
		"model": model.Model{
			Name: "Pet",
			Properties: []model.PropertyModel{
				{Name: "kind", TargetType: model.TypeText, Enum: &model.Enum{Name: "KindTypes", Values: "cat,dog"}},
			},
			Defaults: []model.Default{{Name: "kind", Value: "'cat'"}},
		},
	}

	tpl := "{% autoescape off %}{{ model.name }}" +
		"{% for p in model.properties %}|{{ p.name }}:{{ p.target_type }}:{{ p.enum.enum_name }}{% endfor %}" +
		"{% for d in model.defaults %}|{{ d.name }}={{ d.value }}{% endfor %}{% endautoescape %}"

	result, err := engine.Render(tpl, data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Pet|kind:str:KindTypes|kind='cat'" {
		t.Fatalf("unexpected output %q", result)
	}
}

func TestGoTemplateEngine_Autoescape(t *testing.T) {
	engine := newEngine(t)

	escaped, err := engine.RenderString("{{ v }}", map[string]any{"v": "'x'"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if escaped != "&#39;x&#39;" {
		t.Fatalf("expected escaped output, got %q", escaped)
	}

	raw, err := engine.RenderString("{% autoescape off %}{{ v|pyquote }}{% endautoescape %}", map[string]any{"v": "it's"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if raw != `'it\'s'` {
		t.Fatalf("unexpected quoted output %q", raw)
	}
}

func TestGoTemplateEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}

	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil || !strings.Contains(err.Error(), "missing.tpl") {
		t.Fatalf("expected missing template error, got %v", err)
	}
	if _, err := engine.RenderString("{{ name", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGoTemplateEngine_BaseDir(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithBaseDir(filepath.Join("testdata", "templates")))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	result, err := engine.RenderTemplate("hello.tpl", map[string]any{"name": "Grace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Grace!\n" {
		t.Fatalf("unexpected output %q", result)
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
