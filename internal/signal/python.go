package signal

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/lang"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
)

func init() {
	registry["python"] = &langRules{
		tags: map[string][]model.Concept{
			"if_statement":           {model.Decision},
			"conditional_expression": {model.Decision},
			"match_statement":        {model.Decision},
			"if_clause":              {model.Decision},
			"for_statement":          {model.Iteration},
			"while_statement":        {model.Iteration},
			"for_in_clause":          {model.Iteration},
			"list_comprehension":     {model.CollectionProducing},
			"set_comprehension":      {model.CollectionProducing},
			"dictionary_comprehension": {model.CollectionProducing},
			"generator_expression":     {model.CollectionProducing},
			"raise_statement":          {model.ErrorSignaling},
			"assert_statement":         {model.ErrorSignaling},
		},
		boundaries: map[string]struct{}{
			"function_definition": {},
			"class_definition":    {},
		},
		wordTypes: map[string]struct{}{
			"identifier": {},
		},
		returnType:     "return_statement",
		classifyReturn: pythonClassifyReturn,
		detect:         pythonDetect,
	}
}

var pythonBoolExprs = map[string]struct{}{
	"comparison_operator": {},
	"boolean_operator":    {},
	"not_operator":        {},
	"true":                {},
	"false":               {},
}

var pythonContainerExprs = map[string]struct{}{
	"list":                     {},
	"set":                      {},
	"dictionary":               {},
	"tuple":                    {},
	"list_comprehension":       {},
	"set_comprehension":        {},
	"dictionary_comprehension": {},
	"generator_expression":     {},
}

var pythonCollectionCallees = map[string]struct{}{
	"list":   {},
	"dict":   {},
	"set":    {},
	"tuple":  {},
	"sorted": {},
	"filter": {},
	"map":    {},
	"zip":    {},
}

var pythonIOCallees = map[string]struct{}{
	"open":       {},
	"print":      {},
	"input":      {},
	"read":       {},
	"readline":   {},
	"readlines":  {},
	"write":      {},
	"writelines": {},
	"send":       {},
	"recv":       {},
	"urlopen":    {},
	"connect":    {},
}

func pythonClassifyReturn(expr *sitter.Node, source []byte) []model.Concept {
	t := expr.Type()
	if _, ok := pythonBoolExprs[t]; ok {
		return []model.Concept{model.Predicate}
	}
	if _, ok := pythonContainerExprs[t]; ok {
		return []model.Concept{model.CollectionProducing}
	}
	if t == "call" {
		if _, ok := pythonCollectionCallees[calleeName(expr, source)]; ok {
			return []model.Concept{model.CollectionProducing}
		}
	}
	return nil
}

func pythonDetect(node *sitter.Node, source []byte, recv string) []model.Concept {
	switch node.Type() {
	case "call":
		if _, ok := pythonIOCallees[calleeName(node, source)]; ok {
			return []model.Concept{model.IO}
		}

	case "assignment", "augmented_assignment":
		if recv == "" {
			recv = "self"
		}
		left := node.ChildByFieldName("left")
		// self.x = v, and self.x[k] = v through the subscript.
		if left != nil && left.Type() == "subscript" {
			left = left.ChildByFieldName("value")
		}
		if left != nil && left.Type() == "attribute" {
			obj := left.ChildByFieldName("object")
			if obj != nil && obj.Type() == "identifier" && lang.NodeText(obj, source) == recv {
				return []model.Concept{model.Mutation}
			}
		}
	}
	return nil
}

// calleeName returns the rightmost identifier of a call target, so both
// open(...) and fh.write(...) resolve to their method name.
func calleeName(callNode *sitter.Node, source []byte) string {
	fn := callNode.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return lang.NodeText(fn, source)
	case "attribute":
		if attr := fn.ChildByFieldName("attribute"); attr != nil {
			return lang.NodeText(attr, source)
		}
	}
	return ""
}
