// Package score implements the name-to-implementation relevance scorer.
package score

import (
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/tokens"
)

// Input bundles everything the scorer may look at for one definition.
type Input struct {
	Name       string
	Tokens     []string
	Kind       model.DefKind
	ParentName string // enclosing class name for methods, "" otherwise
	Signal     model.SemanticSignal
}

// affixTokens are connective tokens ignored entirely: they imply no concept
// and are not matched against the body.
var affixTokens = map[string]struct{}{
	"get": {}, "on": {}, "to": {}, "of": {}, "the": {},
	"a": {}, "an": {}, "and": {}, "or": {}, "with": {},
	"for": {}, "from": {}, "by": {}, "at": {}, "in": {},
}

// Score rates how well a name matches the behavior observed in its body,
// returning a value in [0,1] and the reasons behind it. It is a pure
// function of its input and the ruleset: no hidden state, no randomness.
func (r *Ruleset) Score(in Input) (float64, []string) {
	semantic := semanticTokens(in.Tokens)
	if len(semantic) == 0 {
		return 0, []string{"name carries no extractable semantics"}
	}

	if in.Signal.Empty() {
		return r.EmptyBodyScore, []string{"empty implementation, cannot verify relevance"}
	}

	var reasons []string

	// Split tokens into convention-bearing ones (implying concepts) and
	// plain lexical candidates matched against the body's word bag.
	var expectTokens []string
	var candidates []string
	for _, tok := range semantic {
		if _, ok := r.Expectations[tok]; ok {
			expectTokens = append(expectTokens, tok)
			continue
		}
		if cs := pluralExpectation(r, tok); cs != nil {
			expectTokens = append(expectTokens, tok)
			continue
		}
		if len(tok) >= 3 && !r.Generic(tok) {
			candidates = append(candidates, tok)
		}
	}

	conceptRatio, conceptReasons := r.matchExpectations(expectTokens, in.Signal)
	reasons = append(reasons, conceptReasons...)

	lexRatio, lexReasons := r.matchLexical(candidates, in)
	reasons = append(reasons, lexReasons...)

	var base float64
	switch {
	case len(expectTokens) > 0 && len(candidates) > 0:
		base = r.ConceptWeight*conceptRatio + r.LexicalWeight*lexRatio
	case len(expectTokens) > 0:
		base = conceptRatio
	case len(candidates) > 0:
		base = lexRatio
	default:
		base = 0
		if !allGeneric(r, semantic) {
			reasons = append(reasons, "name is too short to convey intent")
		}
	}

	if allGeneric(r, semantic) {
		base = min(base, r.GenericCap)
		reasons = append(reasons, "generic name, no identifiable intent")
	}

	score := clamp(base)
	return score, append([]string{band(score)}, reasons...)
}

// semanticTokens drops numeric and connective tokens.
func semanticTokens(toks []string) []string {
	var out []string
	for _, t := range toks {
		if tokens.Numeric(t) {
			continue
		}
		if _, ok := affixTokens[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return out
}

// pluralExpectation treats plural nouns as implying a collection-producing
// body. Heuristic: long enough, trailing single "s", not otherwise mapped.
func pluralExpectation(r *Ruleset, tok string) []model.Concept {
	if len(tok) < 4 || !strings.HasSuffix(tok, "s") || strings.HasSuffix(tok, "ss") {
		return nil
	}
	if r.Generic(tok) {
		return nil
	}
	return []model.Concept{model.CollectionProducing}
}

func (r *Ruleset) matchExpectations(expectTokens []string, sig model.SemanticSignal) (float64, []string) {
	if len(expectTokens) == 0 {
		return 0, nil
	}

	satisfied := 0
	var reasons []string
	for _, tok := range expectTokens {
		implied := r.Expectations[tok]
		if implied == nil {
			implied = pluralExpectation(r, tok)
		}
		if anyObserved(implied, sig) {
			satisfied++
			continue
		}
		reasons = append(reasons, fmt.Sprintf("token %q implies %s, but the body shows no such behavior",
			tok, orJoin(implied)))
	}
	return float64(satisfied) / float64(len(expectTokens)), reasons
}

// matchLexical credits name tokens that appear (by stem, or fuzzily) among
// the identifiers used in the body. For methods, the enclosing class name
// contributes context words.
func (r *Ruleset) matchLexical(candidates []string, in Input) (float64, []string) {
	if len(candidates) == 0 {
		return 0, nil
	}

	stems := make(map[string]struct{}, len(in.Signal.Words))
	var words []string
	for w := range in.Signal.Words {
		stems[tokens.Stem(w)] = struct{}{}
		words = append(words, w)
	}
	if in.Kind == model.Method && in.ParentName != "" {
		for _, w := range tokens.Split(in.ParentName) {
			stems[tokens.Stem(w)] = struct{}{}
			words = append(words, w)
		}
	}

	credit := 0.0
	missed := 0
	for _, tok := range candidates {
		if _, ok := stems[tokens.Stem(tok)]; ok {
			credit++
			continue
		}
		if fuzzyMatches(tok, words, r.FuzzyThreshold) {
			credit += 0.5
			continue
		}
		missed++
	}

	var reasons []string
	if missed > 0 {
		reasons = append(reasons, fmt.Sprintf("%d of %d name tokens never appear in the implementation",
			missed, len(candidates)))
	}
	return credit / float64(len(candidates)), reasons
}

// fuzzyMatches reports whether tok is close to any body word by
// Jaro-Winkler similarity.
func fuzzyMatches(tok string, words []string, threshold float64) bool {
	for _, w := range words {
		sim, err := edlib.StringsSimilarity(tok, w, edlib.JaroWinkler)
		if err == nil && float64(sim) >= threshold {
			return true
		}
	}
	return false
}

func anyObserved(implied []model.Concept, sig model.SemanticSignal) bool {
	for _, c := range implied {
		if sig.Concepts[c] > 0 {
			return true
		}
	}
	return false
}

func allGeneric(r *Ruleset, semantic []string) bool {
	for _, t := range semantic {
		if !r.Generic(t) {
			return false
		}
	}
	return len(semantic) > 0
}

func orJoin(concepts []model.Concept) string {
	parts := make([]string, len(concepts))
	for i, c := range concepts {
		parts[i] = string(c)
	}
	return strings.Join(parts, " or ")
}

// band phrases the score the way the console summarizes it; it is always the
// first reason.
func band(score float64) string {
	switch {
	case score >= 0.7:
		return "name reflects the implementation well"
	case score >= 0.6:
		return "name reflects the implementation"
	case score >= 0.5:
		return "name mostly reflects the implementation; needs improvement"
	case score >= 0.3:
		return "name somewhat reflects the implementation; consider renaming"
	default:
		return "name does not reflect the implementation"
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
