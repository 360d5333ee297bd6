package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func init() {
	Languages["go"] = &Language{
		Name:       "go",
		Extensions: []string{".go"},
		lang:       golang.GetLanguage(),
		Params:     goParams,
		Body:       goBody,
		Receiver:   goReceiver,
	}
}

// goBody returns the function body block, or the field list for a struct
// declaration (the @definition.class capture is the type_declaration node).
func goBody(defNode *sitter.Node) *sitter.Node {
	if defNode.Type() == "type_declaration" {
		for i := 0; i < int(defNode.NamedChildCount()); i++ {
			spec := defNode.NamedChild(i)
			if spec.Type() != "type_spec" {
				continue
			}
			if t := spec.ChildByFieldName("type"); t != nil && t.Type() == "struct_type" {
				// The field list is an anonymous child, not a field.
				for j := 0; j < int(t.NamedChildCount()); j++ {
					if child := t.NamedChild(j); child.Type() == "field_declaration_list" {
						return child
					}
				}
				return nil
			}
		}
		return nil
	}
	return defNode.ChildByFieldName("body")
}

func goParams(defNode *sitter.Node, source []byte) []string {
	paramsNode := defNode.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var params []string
	for i := 0; i < int(paramsNode.NamedChildCount()); i++ {
		decl := paramsNode.NamedChild(i)
		if decl.Type() != "parameter_declaration" && decl.Type() != "variadic_parameter_declaration" {
			continue
		}
		// A declaration can name several parameters (a, b int).
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			child := decl.NamedChild(j)
			if child.Type() == "identifier" {
				params = append(params, NodeText(child, source))
			}
		}
	}
	return params
}

func goReceiver(defNode *sitter.Node, source []byte) (string, string) {
	recv := defNode.ChildByFieldName("receiver")
	if recv == nil {
		return "", ""
	}

	var name, typ string
	for i := 0; i < int(recv.NamedChildCount()); i++ {
		decl := recv.NamedChild(i)
		if decl.Type() != "parameter_declaration" {
			continue
		}
		if id := decl.ChildByFieldName("name"); id != nil {
			name = NodeText(id, source)
		}
		if t := decl.ChildByFieldName("type"); t != nil {
			typ = receiverTypeName(t, source)
		}
	}
	return name, typ
}

func receiverTypeName(typeNode *sitter.Node, source []byte) string {
	switch typeNode.Type() {
	case "pointer_type":
		for i := 0; i < int(typeNode.NamedChildCount()); i++ {
			if child := typeNode.NamedChild(i); child.Type() == "type_identifier" || child.Type() == "generic_type" {
				return receiverTypeName(child, source)
			}
		}
		return ""
	case "generic_type":
		if t := typeNode.ChildByFieldName("type"); t != nil {
			return NodeText(t, source)
		}
		return ""
	default:
		return NodeText(typeNode, source)
	}
}
