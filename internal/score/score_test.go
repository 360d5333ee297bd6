package score

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/tokens"
)

func sig(concepts map[model.Concept]int, words map[string]int) model.SemanticSignal {
	if concepts == nil {
		concepts = map[model.Concept]int{}
	}
	if words == nil {
		words = map[string]int{}
	}
	return model.SemanticSignal{Concepts: concepts, Words: words}
}

func input(name string, kind model.DefKind, s model.SemanticSignal) Input {
	return Input{Name: name, Tokens: tokens.Split(name), Kind: kind, Signal: s}
}

// A predicate body behind an is_ prefix scores above the threshold.
func TestPredicateNameMatchesPredicateBody(t *testing.T) {
	t.Parallel()
	r := Default()

	score, reasons := r.Score(input("is_even", model.Function,
		sig(map[model.Concept]int{model.Predicate: 1}, map[string]int{"n": 1})))

	assert.GreaterOrEqual(t, score, r.Threshold)
	require.NotEmpty(t, reasons)
	assert.Equal(t, "name reflects the implementation well", reasons[0])
}

// A generic name never rises above the cap, no matter how rich the body is.
func TestGenericNameCapped(t *testing.T) {
	t.Parallel()
	r := Default()

	rich := sig(map[model.Concept]int{
		model.Iteration: 3, model.Decision: 2, model.CollectionProducing: 1,
	}, map[string]int{"account": 4, "balance": 2})

	for _, name := range []string{"data", "handle", "process", "do_stuff"} {
		score, reasons := r.Score(input(name, model.Function, rich))
		assert.LessOrEqual(t, score, r.GenericCap, "name %q", name)
		assert.Contains(t, reasons, "generic name, no identifiable intent", "name %q", name)
	}
}

// An empty body gets the fixed low score and the fixed reason.
func TestEmptyBody(t *testing.T) {
	t.Parallel()
	r := Default()

	score, reasons := r.Score(input("Manager", model.Class, sig(nil, nil)))

	assert.LessOrEqual(t, score, 0.3)
	assert.Equal(t, r.EmptyBodyScore, score)
	assert.Contains(t, reasons, "empty implementation, cannot verify relevance")
}

// A name with no extractable tokens is unscoreable.
func TestUnscoreableName(t *testing.T) {
	t.Parallel()
	r := Default()

	for _, name := range []string{"", "_", "___", "42"} {
		score, reasons := r.Score(input(name, model.Function,
			sig(map[model.Concept]int{model.Decision: 1}, nil)))
		assert.Zero(t, score, "name %q", name)
		assert.Contains(t, reasons, "name carries no extractable semantics", "name %q", name)
	}
}

// A token may be satisfied by any of the concepts it implies: save means
// io or mutation.
func TestAnyOfExpectation(t *testing.T) {
	t.Parallel()
	r := Default()

	ioOnly := sig(map[model.Concept]int{model.IO: 1}, map[string]int{"user": 2})
	score, _ := r.Score(input("save_user", model.Function, ioOnly))
	assert.GreaterOrEqual(t, score, r.Threshold)

	mutOnly := sig(map[model.Concept]int{model.Mutation: 1}, map[string]int{"user": 2})
	score, _ = r.Score(input("save_user", model.Function, mutOnly))
	assert.GreaterOrEqual(t, score, r.Threshold)
}

func TestUnmetExpectationReason(t *testing.T) {
	t.Parallel()
	r := Default()

	score, reasons := r.Score(input("is_sorted", model.Function,
		sig(map[model.Concept]int{model.Mutation: 2}, map[string]int{"buffer": 1})))

	assert.Less(t, score, r.Threshold)
	assert.Contains(t, reasons, `token "is" implies predicate, but the body shows no such behavior`)
}

// A plural name expects a collection-producing body.
func TestPluralExpectsCollection(t *testing.T) {
	t.Parallel()
	r := Default()

	with, _ := r.Score(input("active_accounts", model.Function,
		sig(map[model.Concept]int{model.CollectionProducing: 1}, map[string]int{"active": 1})))
	without, _ := r.Score(input("active_accounts", model.Function,
		sig(map[model.Concept]int{model.Mutation: 1}, map[string]int{"active": 1})))

	assert.Greater(t, with, without)
}

// The enclosing class name supplies context for method tokens.
func TestMethodClassContext(t *testing.T) {
	t.Parallel()
	r := Default()

	s := sig(map[model.Concept]int{model.Decision: 1}, map[string]int{"deadline": 1})

	asMethod := Input{
		Name: "expired_invoice", Tokens: tokens.Split("expired_invoice"),
		Kind: model.Method, ParentName: "Invoice", Signal: s,
	}
	asFunction := Input{
		Name: "expired_invoice", Tokens: tokens.Split("expired_invoice"),
		Kind: model.Function, Signal: s,
	}

	mScore, _ := r.Score(asMethod)
	fScore, _ := r.Score(asFunction)
	assert.Greater(t, mScore, fScore)
}

// Scoring is a pure function: identical inputs yield identical outputs.
func TestScoreIdempotent(t *testing.T) {
	t.Parallel()
	r := Default()

	in := input("fetch_active_users", model.Function, sig(
		map[model.Concept]int{model.IO: 1, model.Iteration: 2},
		map[string]int{"active": 1, "user": 3, "session": 1},
	))

	s1, r1 := r.Score(in)
	s2, r2 := r.Score(in)
	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
}

// Every score stays inside [0,1].
func TestScoreBounds(t *testing.T) {
	t.Parallel()
	r := Default()

	inputs := []Input{
		input("x", model.Function, sig(nil, map[string]int{"y": 1})),
		input("save_write_store_dump", model.Function, sig(map[model.Concept]int{model.IO: 9}, nil)),
		input("zzz_qqq", model.Function, sig(map[model.Concept]int{model.Decision: 1}, map[string]int{"aaa": 1})),
		input("users", model.Class, sig(map[model.Concept]int{model.CollectionProducing: 1}, nil)),
	}
	for _, in := range inputs {
		score, _ := r.Score(in)
		assert.GreaterOrEqual(t, score, 0.0, "name %q", in.Name)
		assert.LessOrEqual(t, score, 1.0, "name %q", in.Name)
	}
}

func TestLoadRulesetOverride(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: team-2026\nthreshold: 0.5\n"), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "team-2026", r.Version)
	assert.Equal(t, 0.5, r.Threshold)
	// Untouched fields keep their defaults.
	assert.True(t, r.Generic("data"))
}

func TestLoadRulesetRequiresVersion(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("threshold: 0.6\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRulesetMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
