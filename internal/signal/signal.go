// Package signal derives semantic concept tags from definition bodies.
//
// Each supported language registers a rule table mapping syntax constructs to
// concept tags. Constructs with no entry contribute nothing: the vocabulary
// is open-world and unrecognized syntax is silently ignored, never an error.
package signal

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/lang"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/tokens"
)

// langRules is the per-language construct lookup table. New languages plug in
// by registering a table; the scorer never changes.
type langRules struct {
	// tags maps a node type directly to the concepts it evidences.
	tags map[string][]model.Concept

	// boundaries are nested definition node types. The walk harvests their
	// name and stops: a nested definition's behavior is scored on its own.
	boundaries map[string]struct{}

	// wordTypes are node types whose text is harvested into the word bag.
	wordTypes map[string]struct{}

	// classifyReturn inspects the expression of a return statement.
	classifyReturn func(expr *sitter.Node, source []byte) []model.Concept

	// detect handles constructs that need more context than a node type,
	// such as receiver mutation and I/O calls. recv is the self-like
	// receiver name ("" for free functions).
	detect func(node *sitter.Node, source []byte, recv string) []model.Concept

	returnType string
}

var registry = map[string]*langRules{}

// Build walks a definition body and returns the semantic signal observed in
// it. A nil body, an empty body, or an unregistered language yields an empty
// signal, not an error.
func Build(language string, def model.Definition, source []byte) model.SemanticSignal {
	sig := model.SemanticSignal{
		Concepts: make(map[model.Concept]int),
		Words:    make(map[string]int),
	}

	r := registry[language]
	if r == nil || def.Body == nil {
		return sig
	}

	walk(r, def.Body, source, def.Receiver, &sig)

	// The receiver name itself carries no semantics of its own.
	if def.Receiver != "" {
		delete(sig.Words, def.Receiver)
	}
	return sig
}

func walk(r *langRules, node *sitter.Node, source []byte, recv string, sig *model.SemanticSignal) {
	nodeType := node.Type()

	if _, ok := r.boundaries[nodeType]; ok {
		if name := node.ChildByFieldName("name"); name != nil {
			harvest(sig, lang.NodeText(name, source))
		}
		return
	}

	for _, c := range r.tags[nodeType] {
		sig.Concepts[c]++
	}

	if nodeType == r.returnType && r.classifyReturn != nil {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			for _, c := range r.classifyReturn(node.NamedChild(i), source) {
				sig.Concepts[c]++
			}
		}
	}

	if r.detect != nil {
		for _, c := range r.detect(node, source, recv) {
			sig.Concepts[c]++
		}
	}

	if _, ok := r.wordTypes[nodeType]; ok {
		harvest(sig, lang.NodeText(node, source))
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(r, node.NamedChild(i), source, recv, sig)
	}
}

func harvest(sig *model.SemanticSignal, identifier string) {
	for _, w := range tokens.Split(identifier) {
		if !tokens.Numeric(w) {
			sig.Words[w]++
		}
	}
}
