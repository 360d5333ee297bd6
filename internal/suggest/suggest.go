// Package suggest proposes alternative names for low-scoring definitions.
package suggest

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/tokens"
)

// fallback is returned when the body offers nothing to name after. It keeps
// the suggestion list non-empty for every result below the threshold.
const fallback = "implementation is too sparse to name; add behavior or rename after review"

// verbFor maps a dominant concept back to the canonical leading token of a
// function name evidencing it.
var verbFor = map[model.Concept]string{
	model.Decision:            "check",
	model.Iteration:           "iterate",
	model.Predicate:           "is",
	model.CollectionProducing: "list",
	model.IO:                  "write",
	model.Mutation:            "update",
	model.ErrorSignaling:      "validate",
}

// classNounFor maps a dominant concept to a class name suffix.
var classNounFor = map[model.Concept]string{
	model.Decision:            "Policy",
	model.Iteration:           "Walker",
	model.Predicate:           "Check",
	model.CollectionProducing: "Collection",
	model.IO:                  "Writer",
	model.Mutation:            "Updater",
	model.ErrorSignaling:      "Validator",
}

// stopWords never appear in a suggested name.
var stopWords = map[string]struct{}{
	"self": {}, "this": {}, "return": {}, "none": {}, "true": {}, "false": {},
	"nil": {}, "err": {}, "error": {}, "the": {}, "and": {}, "for": {},
	"with": {}, "from": {}, "value": {}, "val": {}, "args": {}, "kwargs": {},
}

// Names derives up to three candidate names from the dominant observed
// concepts and the most frequent identifier words of the body, formatted in
// the same naming convention as the original identifier. The returned slice
// is never empty.
func Names(def model.Definition, sig model.SemanticSignal, nameTokens []string) []string {
	concepts := dominantConcepts(sig)
	words := dominantWords(sig, nameTokens)

	if len(concepts) == 0 && len(words) == 0 {
		return []string{fallback}
	}

	var out []string
	add := func(parts ...string) {
		if len(parts) == 0 {
			return
		}
		name := format(def, parts)
		for _, seen := range out {
			if seen == name {
				return
			}
		}
		out = append(out, name)
	}

	if def.Kind == model.Class {
		if len(words) > 0 && len(concepts) > 0 {
			add(words[0], strings.ToLower(classNounFor[concepts[0]]))
		}
		if len(words) >= 2 {
			add(words[0], words[1])
		}
		if len(words) == 0 && len(concepts) > 0 {
			add(strings.ToLower(classNounFor[concepts[0]]))
		}
	} else {
		verb := functionVerb(concepts)
		if verb != "" && len(words) > 0 {
			add(verb, words[0])
			if len(words) >= 2 {
				add(verb, words[0], words[1])
			}
		} else if verb != "" {
			add(verb, noun(concepts))
		} else if len(words) >= 1 {
			// No behavioral evidence; name after what the body talks about.
			add(words[:min(2, len(words))]...)
		}
	}

	if len(out) == 0 {
		return []string{fallback}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// functionVerb picks the leading verb from the dominant concepts.
// A filtering body (collection + decision) reads better as filter_x than
// list_x.
func functionVerb(concepts []model.Concept) string {
	if len(concepts) == 0 {
		return ""
	}
	if has(concepts, model.CollectionProducing) && has(concepts, model.Decision) {
		return "filter"
	}
	return verbFor[concepts[0]]
}

// noun supplies a generic object when the body had no usable words.
func noun(concepts []model.Concept) string {
	if has(concepts, model.CollectionProducing) || has(concepts, model.Iteration) {
		return "items"
	}
	return "state"
}

func has(concepts []model.Concept, c model.Concept) bool {
	for _, x := range concepts {
		if x == c {
			return true
		}
	}
	return false
}

// dominantConcepts orders observed concepts by weight, breaking ties in the
// fixed vocabulary order so results stay deterministic.
func dominantConcepts(sig model.SemanticSignal) []model.Concept {
	var out []model.Concept
	for _, c := range model.Concepts {
		if sig.Concepts[c] > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sig.Concepts[out[i]] > sig.Concepts[out[j]]
	})
	return out
}

// dominantWords picks the most frequent meaningful body words, skipping stop
// words and words that just restate the current name.
func dominantWords(sig model.SemanticSignal, nameTokens []string) []string {
	var words []string
	for w := range sig.Words {
		if len(w) < 3 {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		if restatesName(w, nameTokens) {
			continue
		}
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if sig.Words[words[i]] != sig.Words[words[j]] {
			return sig.Words[words[i]] > sig.Words[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > 3 {
		words = words[:3]
	}
	return words
}

// restatesName drops body words that are just the flagged name again, by stem
// or close similarity.
func restatesName(word string, nameTokens []string) bool {
	ws := tokens.Stem(word)
	for _, t := range nameTokens {
		if tokens.Stem(t) == ws {
			return true
		}
		if sim, err := edlib.StringsSimilarity(word, t, edlib.JaroWinkler); err == nil && float64(sim) >= 0.92 {
			return true
		}
	}
	return false
}

// format renders name parts in the convention of the original identifier:
// snake_case stays snake, PascalCase names stay Pascal, anything else camel.
func format(def model.Definition, parts []string) string {
	switch {
	case strings.Contains(def.Name, "_") || def.Name == strings.ToLower(def.Name):
		return strings.Join(parts, "_")
	case startsUpper(def.Name):
		return joinCamel(parts, true)
	default:
		return joinCamel(parts, false)
	}
}

func startsUpper(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}

func joinCamel(parts []string, capFirst bool) string {
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 && !capFirst {
			b.WriteString(p)
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	return b.String()
}
