// Package model defines core data structures for the name relevance analyzer.
package model

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// DefKind indicates the syntactic kind of a definition.
type DefKind string

const (
	Function DefKind = "function"
	Method   DefKind = "method"
	Class    DefKind = "class"
)

// Definition is one function or class found in a source unit. It is created
// once during extraction and never mutated afterwards.
type Definition struct {
	Kind   DefKind
	Name   string
	Params []string
	Line   int

	// Receiver is the self-like receiver identifier for methods ("self" in
	// Python, the receiver name in Go). Empty for functions and classes.
	Receiver string

	// Parent is the index of the enclosing class definition within the same
	// extraction sequence, or -1 for top-level definitions. An index is used
	// instead of a pointer so container and contained records stay acyclic.
	Parent int

	// Body is the opaque parse-tree handle for the definition body. It may be
	// nil for definitions without a body node (e.g. a bodiless struct).
	Body *sitter.Node
}

// Concept is a behavioral concept tag observed in a definition body.
type Concept string

const (
	Decision            Concept = "decision"
	Iteration           Concept = "iteration"
	Predicate           Concept = "predicate"
	CollectionProducing Concept = "collection-producing"
	IO                  Concept = "io"
	Mutation            Concept = "mutation"
	ErrorSignaling      Concept = "error-signaling"
)

// Concepts lists every known concept tag in a fixed order, used wherever
// deterministic iteration over a concept set is required.
var Concepts = []Concept{
	Decision,
	Iteration,
	Predicate,
	CollectionProducing,
	IO,
	Mutation,
	ErrorSignaling,
}

// SemanticSignal is the bag of behavioral concepts observed in a definition
// body, weighted by occurrence, plus the identifier words seen while walking
// it. Both maps may be empty for trivially empty bodies.
type SemanticSignal struct {
	Concepts map[Concept]int
	Words    map[string]int
}

// Empty reports whether the body produced no observable behavior at all.
func (s SemanticSignal) Empty() bool {
	return len(s.Concepts) == 0 && len(s.Words) == 0
}

// RelevanceResult is the scored outcome for a single definition.
type RelevanceResult struct {
	Name        string   `json:"name"`
	Kind        DefKind  `json:"kind"`
	Line        int      `json:"line"`
	Score       float64  `json:"score"`
	Reasons     []string `json:"reasons"`
	Suggestions []string `json:"suggestions,omitempty"`

	// Unscored marks a definition whose processing failed. The failure reason
	// is carried in Reasons and the run as a whole still succeeds.
	Unscored bool `json:"unscored,omitempty"`
}

// Summary holds aggregate statistics for one report.
type Summary struct {
	Definitions    int     `json:"definitions"`
	OverallScore   float64 `json:"overall_score"`
	BelowThreshold int     `json:"below_threshold"`
}

// Report is the aggregated, persistable result of analyzing one source unit.
type Report struct {
	SourcePath     string            `json:"source_path"`
	GeneratedAt    string            `json:"generated_at"`
	RulesetVersion string            `json:"ruleset_version"`
	Results        []RelevanceResult `json:"results"`
	Summary        Summary           `json:"summary"`
}
