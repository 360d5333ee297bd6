// Package extract turns a parsed source tree into Definition records.
package extract

import (
	"context"
	"iter"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/lang"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
)

var captureKinds = map[string]model.DefKind{
	"definition.class":    model.Class,
	"definition.function": model.Function,
	"definition.method":   model.Method,
}

// Parse parses source and verifies it is syntactically valid. A tree
// containing error nodes yields a *model.ParseError with the location of the
// first error, which aborts the whole run.
func Parse(l *lang.Language, parser *sitter.Parser, source []byte, path string) (*sitter.Tree, error) {
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, &model.ParseError{Path: path}
	}

	root := tree.RootNode()
	if root.HasError() {
		line, col := 0, 0
		if errNode := findErrorNode(root); errNode != nil {
			line = int(errNode.StartPoint().Row) + 1
			col = int(errNode.StartPoint().Column) + 1
		}
		tree.Close()
		return nil, &model.ParseError{Path: path, Line: line, Col: col}
	}
	return tree, nil
}

func findErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.HasError() {
			return findErrorNode(child)
		}
	}
	// The error is attached to this node itself (e.g. a missing token).
	return node
}

// Definitions yields one Definition per function, method or class in the
// tree, in source order. The sequence is lazy, finite and single-pass: each
// definition is produced on demand and the walk is not restartable.
//
// Methods carry the index of their enclosing class within this same sequence
// in Parent (-1 when the class is not part of the source unit, e.g. a Go
// method whose receiver type lives in another file).
func Definitions(l *lang.Language, query *sitter.Query, tree *sitter.Tree, source []byte) iter.Seq[model.Definition] {
	return func(yield func(model.Definition) bool) {
		qc := sitter.NewQueryCursor()
		defer qc.Close()
		qc.Exec(query, tree.RootNode())

		next := 0
		classIndexByPos := make(map[uint32]int)
		classIndexByName := make(map[string]int)

		for {
			match, ok := qc.NextMatch()
			if !ok {
				return
			}
			match = qc.FilterPredicates(match, source)

			var nameNode, defNode *sitter.Node
			var kind model.DefKind
			var captured bool

			for _, c := range match.Captures {
				cname := query.CaptureNameForId(c.Index)
				if cname == "name" {
					nameNode = c.Node
				} else if k, ok := captureKinds[cname]; ok {
					kind = k
					defNode = c.Node
					captured = true
				}
			}
			if nameNode == nil || !captured {
				continue
			}

			def := model.Definition{
				Kind:   kind,
				Name:   lang.NodeText(nameNode, source),
				Line:   int(nameNode.StartPoint().Row) + 1,
				Parent: -1,
			}
			if l.Body != nil {
				def.Body = l.Body(defNode)
			}

			switch kind {
			case model.Class:
				classIndexByPos[defNode.StartByte()] = next
				classIndexByName[def.Name] = next

			case model.Function:
				def.Params = l.Params(defNode, source)
				// Nested inside a class body means this is really a method.
				if l.EnclosingClass != nil {
					if classNode := l.EnclosingClass(defNode); classNode != nil {
						def.Kind = model.Method
						if idx, ok := classIndexByPos[classNode.StartByte()]; ok {
							def.Parent = idx
						}
						if len(def.Params) > 0 {
							def.Receiver = def.Params[0]
						}
					}
				}

			case model.Method:
				def.Params = l.Params(defNode, source)
				if l.Receiver != nil {
					name, typ := l.Receiver(defNode, source)
					def.Receiver = name
					if idx, ok := classIndexByName[typ]; ok {
						def.Parent = idx
					}
				}
			}

			if !yield(def) {
				return
			}
			next++
		}
	}
}
