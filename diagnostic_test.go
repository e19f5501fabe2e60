package godeko_test

import (
	"strings"
	"testing"

	godeko "github.com/reoring/godeko"
)

func TestDiagnosticsErrorSummary(t *testing.T) {
	ds := godeko.Diagnostics{
		{Code: godeko.CodeIncorrectType, Range: godeko.Range{Start: 0, End: 2}},
		{Code: godeko.CodeUnknownKey, Range: godeko.Range{Start: 4, End: 9}},
		{Code: godeko.CodeOutOfRange, Range: godeko.Range{Start: 12, End: 15}},
		{Code: godeko.CodeRequired, Range: godeko.Range{Start: 0, End: 1}},
	}
	s := ds.Error()
	if s == "" {
		t.Fatalf("expected non-empty error summary")
	}
	if !strings.Contains(s, "incorrect_type at 0..2") {
		t.Fatalf("summary should lead with the first diagnostic, got %q", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("summary should mention the total, got %q", s)
	}
}

func TestDiagnosticsHasErrors(t *testing.T) {
	ds := godeko.Diagnostics{{Code: godeko.CodeDuplicateKey, Severity: godeko.Warn}}
	if ds.HasErrors() {
		t.Fatalf("warnings are not errors")
	}
	ds.Push(godeko.NewParseError("boom", godeko.Range{}))
	if !ds.HasErrors() {
		t.Fatalf("a parse error is an error")
	}
}

func TestAsDiagnostics(t *testing.T) {
	var err error = godeko.Diagnostics{{Code: godeko.CodeParseError}}
	ds, ok := godeko.AsDiagnostics(err)
	if !ok || len(ds) != 1 {
		t.Fatalf("expected to recover the diagnostics, got %v ok=%v", ds, ok)
	}
	if _, ok := godeko.AsDiagnostics(nil); ok {
		t.Fatalf("nil error carries no diagnostics")
	}
}

func TestShapeString(t *testing.T) {
	cases := []struct {
		shape godeko.Shape
		want  string
	}{
		{godeko.NoShape, "no value"},
		{godeko.NumberShape, "a number"},
		{godeko.NullShape | godeko.NumberShape, "null or a number"},
		{godeko.BoolShape | godeko.StrShape | godeko.MapShape, "a boolean, a string or an object"},
	}
	for _, c := range cases {
		if got := c.shape.String(); got != c.want {
			t.Fatalf("shape %b: expected %q, got %q", c.shape, c.want, got)
		}
	}
}

func TestShapeHas(t *testing.T) {
	if !godeko.AnyShape.Has(godeko.MapShape) {
		t.Fatalf("AnyShape contains every shape")
	}
	if godeko.NumberShape.Has(godeko.StrShape) {
		t.Fatalf("a number is not a string")
	}
	if godeko.AnyShape.Has(godeko.NoShape) {
		t.Fatalf("NoShape is never contained")
	}
}

func TestUnknownKeyDiagnosticCarriesAllowList(t *testing.T) {
	d := godeko.NewUnknownKey("colour", []string{"color", "size"}, godeko.Range{Start: 2, End: 10})
	if d.Code != godeko.CodeUnknownKey || len(d.AllowedKeys) != 2 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d.Severity != godeko.Error {
		t.Fatalf("unknown keys are errors by default")
	}
}
