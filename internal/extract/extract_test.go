package extract

import (
	"errors"
	"testing"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/lang"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
)

func setup(t *testing.T, langName string) func(source string) []model.Definition {
	t.Helper()
	l := lang.Languages[langName]
	if l == nil {
		t.Fatalf("language %q not registered", langName)
	}
	q, err := l.GetDefQuery()
	if err != nil {
		t.Fatalf("GetDefQuery: %v", err)
	}
	return func(source string) []model.Definition {
		p := l.NewParser()
		tree, err := Parse(l, p, []byte(source), "test"+l.Extensions[0])
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		t.Cleanup(tree.Close)

		var defs []model.Definition
		for def := range Definitions(l, q, tree, []byte(source)) {
			defs = append(defs, def)
		}
		return defs
	}
}

// --- Python ---

func TestPythonFunction(t *testing.T) {
	t.Parallel()
	extract := setup(t, "python")

	defs := extract("def fetch_rows(conn, limit=10):\n    return conn.query(limit)\n")
	if len(defs) != 1 {
		t.Fatalf("expected 1 def, got %d", len(defs))
	}
	d := defs[0]
	if d.Name != "fetch_rows" || d.Kind != model.Function {
		t.Errorf("got %q/%q", d.Name, d.Kind)
	}
	if d.Line != 1 {
		t.Errorf("line = %d, want 1", d.Line)
	}
	if len(d.Params) != 2 || d.Params[0] != "conn" || d.Params[1] != "limit" {
		t.Errorf("params = %v", d.Params)
	}
	if d.Parent != -1 {
		t.Errorf("parent = %d, want -1", d.Parent)
	}
	if d.Body == nil {
		t.Error("body = nil")
	}
}

func TestPythonMethodParentIndex(t *testing.T) {
	t.Parallel()
	extract := setup(t, "python")

	source := `class Repository:
    def save(self, record):
        self.records.append(record)

def helper():
    pass
`
	defs := extract(source)
	if len(defs) != 3 {
		t.Fatalf("expected 3 defs, got %d: %+v", len(defs), defs)
	}

	cls, method, free := defs[0], defs[1], defs[2]
	if cls.Kind != model.Class || cls.Name != "Repository" {
		t.Errorf("first def = %q/%q", cls.Name, cls.Kind)
	}
	if method.Kind != model.Method || method.Name != "save" {
		t.Errorf("second def = %q/%q", method.Name, method.Kind)
	}
	if method.Parent != 0 {
		t.Errorf("method parent = %d, want 0", method.Parent)
	}
	if method.Receiver != "self" {
		t.Errorf("receiver = %q, want self", method.Receiver)
	}
	if free.Kind != model.Function || free.Parent != -1 {
		t.Errorf("free def = %q parent %d", free.Name, free.Parent)
	}
}

func TestPythonEmptyBody(t *testing.T) {
	t.Parallel()
	extract := setup(t, "python")

	defs := extract("class Manager:\n    pass\n")
	if len(defs) != 1 {
		t.Fatalf("expected 1 def, got %d", len(defs))
	}
	if defs[0].Kind != model.Class || defs[0].Body == nil {
		t.Errorf("def = %+v", defs[0])
	}
}

// --- Go ---

func TestGoFunctionAndMethod(t *testing.T) {
	t.Parallel()
	extract := setup(t, "go")

	source := `package p

type Store struct {
	items []string
}

func (s *Store) Add(item string) {
	s.items = append(s.items, item)
}

func IsEmpty(xs []string) bool {
	return len(xs) == 0
}
`
	defs := extract(source)
	if len(defs) != 3 {
		t.Fatalf("expected 3 defs, got %d: %+v", len(defs), defs)
	}

	cls, method, fn := defs[0], defs[1], defs[2]
	if cls.Kind != model.Class || cls.Name != "Store" {
		t.Errorf("struct def = %q/%q", cls.Name, cls.Kind)
	}
	if cls.Body == nil {
		t.Error("struct with fields has nil body")
	}
	if method.Kind != model.Method || method.Name != "Add" {
		t.Errorf("method def = %q/%q", method.Name, method.Kind)
	}
	if method.Parent != 0 {
		t.Errorf("method parent = %d, want 0", method.Parent)
	}
	if method.Receiver != "s" {
		t.Errorf("receiver = %q, want s", method.Receiver)
	}
	if fn.Kind != model.Function || fn.Name != "IsEmpty" {
		t.Errorf("func def = %q/%q", fn.Name, fn.Kind)
	}
	if len(fn.Params) != 1 || fn.Params[0] != "xs" {
		t.Errorf("params = %v", fn.Params)
	}
}

func TestGoMethodWithoutStructInFile(t *testing.T) {
	t.Parallel()
	extract := setup(t, "go")

	defs := extract("package p\n\nfunc (c *Client) Close() error { return nil }\n")
	if len(defs) != 1 {
		t.Fatalf("expected 1 def, got %d", len(defs))
	}
	if defs[0].Parent != -1 {
		t.Errorf("parent = %d, want -1 (receiver type not in this unit)", defs[0].Parent)
	}
}

// --- Parse errors ---

func TestParseErrorLocation(t *testing.T) {
	t.Parallel()
	l := lang.Languages["python"]
	p := l.NewParser()

	_, err := Parse(l, p, []byte("def broken(:\n"), "bad.py")
	if err == nil {
		t.Fatal("expected parse error")
	}
	var pe *model.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type = %T, want *model.ParseError", err)
	}
	if pe.Path != "bad.py" {
		t.Errorf("path = %q", pe.Path)
	}
	if pe.Line < 1 {
		t.Errorf("line = %d, want >= 1", pe.Line)
	}
}
