package signal

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/lang"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
)

func init() {
	registry["go"] = &langRules{
		tags: map[string][]model.Concept{
			"if_statement":                {model.Decision},
			"expression_switch_statement": {model.Decision},
			"type_switch_statement":       {model.Decision},
			"select_statement":            {model.Decision},
			"for_statement":               {model.Iteration},
		},
		boundaries: map[string]struct{}{
			"function_declaration": {},
			"method_declaration":   {},
		},
		wordTypes: map[string]struct{}{
			"identifier":       {},
			"field_identifier": {},
			"type_identifier":  {},
		},
		returnType:     "return_statement",
		classifyReturn: goClassifyReturn,
		detect:         goDetect,
	}
}

var goComparisonOps = map[string]struct{}{
	"==": {}, "!=": {}, "<": {}, ">": {}, "<=": {}, ">=": {}, "&&": {}, "||": {},
}

// goIOPrefixes are qualified call prefixes treated as external I/O.
var goIOPrefixes = []string{
	"fmt.Print", "fmt.Fprint", "fmt.Scan",
	"os.", "io.", "net.", "http.", "bufio.", "ioutil.",
}

var goErrorCallees = map[string]struct{}{
	"panic":      {},
	"errors.New": {},
	"fmt.Errorf": {},
}

func goClassifyReturn(expr *sitter.Node, source []byte) []model.Concept {
	switch expr.Type() {
	// The grammar wraps returned expressions in an expression_list.
	case "expression_list":
		var out []model.Concept
		for i := 0; i < int(expr.NamedChildCount()); i++ {
			out = append(out, goClassifyReturn(expr.NamedChild(i), source)...)
		}
		return out

	case "true", "false":
		return []model.Concept{model.Predicate}

	case "binary_expression":
		if op := expr.ChildByFieldName("operator"); op != nil {
			if _, ok := goComparisonOps[op.Type()]; ok {
				return []model.Concept{model.Predicate}
			}
		}

	case "unary_expression":
		if op := expr.ChildByFieldName("operator"); op != nil && op.Type() == "!" {
			return []model.Concept{model.Predicate}
		}

	case "composite_literal":
		if t := expr.ChildByFieldName("type"); t != nil {
			switch t.Type() {
			case "slice_type", "map_type", "array_type":
				return []model.Concept{model.CollectionProducing}
			}
		}

	case "call_expression":
		callee := goCallee(expr, source)
		if callee == "append" || callee == "make" {
			return []model.Concept{model.CollectionProducing}
		}
	}
	return nil
}

func goDetect(node *sitter.Node, source []byte, recv string) []model.Concept {
	switch node.Type() {
	case "call_expression":
		callee := goCallee(node, source)
		if _, ok := goErrorCallees[callee]; ok {
			return []model.Concept{model.ErrorSignaling}
		}
		for _, prefix := range goIOPrefixes {
			if strings.HasPrefix(callee, prefix) {
				return []model.Concept{model.IO}
			}
		}

	case "assignment_statement", "inc_statement", "dec_statement":
		if recv == "" {
			return nil
		}
		left := node.NamedChild(0)
		if left == nil {
			return nil
		}
		if left.Type() == "expression_list" {
			left = left.NamedChild(0)
		}
		if left != nil && left.Type() == "selector_expression" {
			operand := left.ChildByFieldName("operand")
			if operand != nil && operand.Type() == "identifier" && lang.NodeText(operand, source) == recv {
				return []model.Concept{model.Mutation}
			}
		}
	}
	return nil
}

func goCallee(callNode *sitter.Node, source []byte) string {
	fn := callNode.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier", "selector_expression":
		return lang.NodeText(fn, source)
	}
	return ""
}
