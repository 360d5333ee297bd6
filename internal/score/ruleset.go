package score

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
)

// Ruleset pins every weight and word list the scorer depends on. Scores are
// reproducible per ruleset version: the version string is recorded in each
// report, and loading an override file requires a distinct version.
type Ruleset struct {
	Version   string  `yaml:"version"`
	Threshold float64 `yaml:"threshold"`

	// GenericTokens are name tokens that carry no identifiable intent. A name
	// made up entirely of them is capped at GenericCap no matter what the
	// body does.
	GenericTokens []string `yaml:"generic_tokens"`
	GenericCap    float64  `yaml:"generic_cap"`

	// Expectations maps a name token to the concepts it implies. A token is
	// satisfied when any one of its implied concepts is observed in the body.
	Expectations map[string][]model.Concept `yaml:"expectations"`

	// EmptyBodyScore is the fixed score for definitions whose body shows no
	// observable behavior at all.
	EmptyBodyScore float64 `yaml:"empty_body_score"`

	// ConceptWeight and LexicalWeight blend the expected-concept match ratio
	// with the lexical token-vs-body overlap. They should sum to 1.
	ConceptWeight float64 `yaml:"concept_weight"`
	LexicalWeight float64 `yaml:"lexical_weight"`

	// FuzzyThreshold is the Jaro-Winkler similarity at which a name token
	// gets half credit against a body word it does not share a stem with.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`

	generic map[string]struct{}
}

// DefaultVersion identifies the embedded ruleset.
const DefaultVersion = "2026.1"

// Default returns the embedded ruleset.
func Default() *Ruleset {
	r := &Ruleset{
		Version:   DefaultVersion,
		Threshold: 0.7,
		GenericTokens: []string{
			"data", "do", "execute", "foo", "handle", "helper", "info",
			"item", "manage", "misc", "object", "process", "run", "stuff",
			"temp", "test", "thing", "util", "utility",
		},
		GenericCap: 0.5,
		Expectations: map[string][]model.Concept{
			"is":     {model.Predicate},
			"has":    {model.Predicate},
			"can":    {model.Predicate},
			"should": {model.Predicate},
			"was":    {model.Predicate},
			"check":  {model.Predicate, model.Decision},
			"verify": {model.Predicate, model.Decision},

			"choose": {model.Decision},
			"decide": {model.Decision},
			"select": {model.Decision, model.CollectionProducing},

			"each":      {model.Iteration},
			"every":     {model.Iteration},
			"iterate":   {model.Iteration},
			"loop":      {model.Iteration},
			"walk":      {model.Iteration},
			"scan":      {model.Iteration},
			"traverse":  {model.Iteration},
			"count":     {model.Iteration},
			"sum":       {model.Iteration},
			"total":     {model.Iteration},
			"aggregate": {model.Iteration, model.CollectionProducing},

			"list":    {model.CollectionProducing},
			"all":     {model.CollectionProducing},
			"collect": {model.CollectionProducing},
			"gather":  {model.CollectionProducing},
			"filter":  {model.CollectionProducing, model.Decision, model.Iteration},
			"sort":    {model.CollectionProducing, model.Iteration},
			"group":   {model.CollectionProducing},
			"split":   {model.CollectionProducing},

			"read":  {model.IO},
			"load":  {model.IO},
			"fetch": {model.IO},
			"open":  {model.IO},
			"print": {model.IO},
			"log":   {model.IO},
			"show":  {model.IO},
			"write": {model.IO, model.Mutation},
			"save":  {model.IO, model.Mutation},
			"store": {model.IO, model.Mutation},
			"send":  {model.IO},
			"emit":  {model.IO},
			"dump":  {model.IO},
			"flush": {model.IO},

			"set":    {model.Mutation},
			"update": {model.Mutation},
			"add":    {model.Mutation, model.CollectionProducing},
			"insert": {model.Mutation, model.CollectionProducing},
			"append": {model.Mutation, model.CollectionProducing},
			"remove": {model.Mutation},
			"delete": {model.Mutation},
			"clear":  {model.Mutation},
			"reset":  {model.Mutation},
			"push":   {model.Mutation},
			"pop":    {model.Mutation},

			"raise":    {model.ErrorSignaling},
			"throw":    {model.ErrorSignaling},
			"fail":     {model.ErrorSignaling},
			"abort":    {model.ErrorSignaling},
			"assert":   {model.ErrorSignaling},
			"ensure":   {model.ErrorSignaling, model.Decision},
			"require":  {model.ErrorSignaling, model.Decision},
			"validate": {model.ErrorSignaling, model.Decision, model.Predicate},
		},
		EmptyBodyScore: 0.2,
		ConceptWeight:  0.75,
		LexicalWeight:  0.25,
		FuzzyThreshold: 0.85,
	}
	r.rebuild()
	return r
}

// Load reads a YAML ruleset override on top of the embedded defaults. The
// file must declare its own version so reports stay attributable to the
// exact ruleset that produced them.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset: %w", err)
	}

	r := Default()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parsing ruleset %s: %w", path, err)
	}
	if r.Version == DefaultVersion {
		return nil, fmt.Errorf("ruleset %s must declare a version other than %q", path, DefaultVersion)
	}
	if r.Threshold <= 0 || r.Threshold > 1 {
		return nil, fmt.Errorf("ruleset %s: threshold %.2f out of range (0,1]", path, r.Threshold)
	}
	r.rebuild()
	return r, nil
}

func (r *Ruleset) rebuild() {
	r.generic = make(map[string]struct{}, len(r.GenericTokens))
	for _, t := range r.GenericTokens {
		r.generic[t] = struct{}{}
	}
}

// Generic reports whether a token is in the generic list.
func (r *Ruleset) Generic(token string) bool {
	_, ok := r.generic[token]
	return ok
}
