package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func init() {
	Languages["python"] = &Language{
		Name:           "python",
		Extensions:     []string{".py"},
		lang:           python.GetLanguage(),
		EnclosingClass: pythonEnclosingClass,
		Params:         pythonParams,
		Body:           pythonBody,
	}
}

func pythonBody(defNode *sitter.Node) *sitter.Node {
	return defNode.ChildByFieldName("body")
}

func pythonEnclosingClass(defNode *sitter.Node) *sitter.Node {
	parent := defNode.Parent()
	if parent == nil {
		return nil
	}

	// Direct: def -> block -> class_definition
	if parent.Type() == "block" && parent.Parent() != nil && parent.Parent().Type() == "class_definition" {
		return parent.Parent()
	}

	// Decorated: def -> decorated_definition -> block -> class_definition
	if parent.Type() == "decorated_definition" {
		gp := parent.Parent()
		if gp != nil && gp.Type() == "block" && gp.Parent() != nil && gp.Parent().Type() == "class_definition" {
			return gp.Parent()
		}
	}

	return nil
}

func pythonParams(defNode *sitter.Node, source []byte) []string {
	paramsNode := defNode.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var params []string
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		child := paramsNode.NamedChild(i)
		switch child.Type() {
		case "identifier":
			params = append(params, NodeText(child, source))
		case "typed_parameter", "default_parameter", "typed_default_parameter",
			"list_splat_pattern", "dictionary_splat_pattern":
			if id := firstIdentifier(child); id != nil {
				params = append(params, NodeText(id, source))
			}
		}
	}
	return params
}

func firstIdentifier(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "identifier" {
			return child
		}
	}
	return nil
}
