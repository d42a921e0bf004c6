package binding

import (
	"testing"
	"time"

	"github.com/rotulado/rotulado/design"
)

var (
	testRow = design.DataRow{"nombre": "Ana", "codigo": "A-42", "obs": ""}
	testCtx = design.RenderContext{
		BatchSize: 1,
		Now:       time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC),
	}
)

func TestDisplayText(t *testing.T) {
	cases := []struct {
		name string
		el   design.Element
		want string
	}{
		{
			"expression wins over everything",
			design.Element{Binding: "{{MAYUS(nombre)}}", TextContent: "fijo"},
			"ANA",
		},
		{
			"plain binding is a column lookup",
			design.Element{Binding: "codigo", TextContent: "fijo"},
			"A-42",
		},
		{
			"binding lookup is case-insensitive",
			design.Element{Binding: "CODIGO"},
			"A-42",
		},
		{
			"missing column falls back to fixed text",
			design.Element{Binding: "no_existe", TextContent: "fijo"},
			"fijo",
		},
		{
			"no binding uses fixed text",
			design.Element{TextContent: "fijo"},
			"fijo",
		},
		{
			"fixed text may carry inline spans",
			design.Element{TextContent: "Hola {{nombre}}"},
			"Hola Ana",
		},
		{
			"empty everything is empty",
			design.Element{},
			"",
		},
	}
	for _, c := range cases {
		if got := DisplayText(c.el, testRow, testCtx); got != c.want {
			t.Errorf("%s: DisplayText = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCodeValue(t *testing.T) {
	cases := []struct {
		name string
		el   design.Element
		want string
	}{
		{
			"expression",
			design.Element{Binding: "{{CONCAT(codigo, \"-X\")}}"},
			"A-42-X",
		},
		{
			"column lookup",
			design.Element{Binding: "codigo"},
			"A-42",
		},
		{
			"missing column prefers fixed text",
			design.Element{Binding: "no_existe", TextContent: "0000"},
			"0000",
		},
		{
			"missing column without text encodes the binding itself",
			design.Element{Binding: "no_existe"},
			"no_existe",
		},
		{
			"no binding encodes fixed text",
			design.Element{TextContent: "1234"},
			"1234",
		},
	}
	for _, c := range cases {
		if got := CodeValue(c.el, testRow, testCtx); got != c.want {
			t.Errorf("%s: CodeValue = %q, want %q", c.name, got, c.want)
		}
	}
}
