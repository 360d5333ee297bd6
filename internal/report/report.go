// Package report drives the per-definition scoring pipeline and assembles
// the results for one source unit.
package report

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/extract"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/lang"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/score"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/signal"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/suggest"
	"github.com/Gokuljokul/method-name-relevance-detector/internal/tokens"
)

// Assembler runs the extract -> signal -> score -> suggest pipeline for every
// definition in a source unit and merges the results into a Report.
type Assembler struct {
	Rules *score.Ruleset

	// Now supplies the report timestamp; overridable in tests.
	Now func() time.Time
}

// New returns an assembler using the given ruleset.
func New(rules *score.Ruleset) *Assembler {
	return &Assembler{Rules: rules, Now: time.Now}
}

// Analyze parses source and scores every definition in it. Invalid syntax
// returns a *model.ParseError and no report. Failures confined to a single
// definition never fail the run: the affected definition is downgraded to an
// unscored sentinel result and its siblings are processed normally.
func (a *Assembler) Analyze(sourcePath string, source []byte, l *lang.Language) (*model.Report, error) {
	query, err := l.GetDefQuery()
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", l.Name, err)
	}

	parser := l.NewParser()
	tree, err := extract.Parse(l, parser, source, sourcePath)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var defs []model.Definition
	for def := range extract.Definitions(l, query, tree, source) {
		defs = append(defs, def)
	}

	results := a.scoreAll(defs, source, l.Name)

	rep := &model.Report{
		SourcePath:     sourcePath,
		GeneratedAt:    a.Now().UTC().Format(time.RFC3339),
		RulesetVersion: a.Rules.Version,
		Results:        results,
	}
	rep.Summary = summarize(results, a.Rules.Threshold)
	return rep, nil
}

// scoreAll fans definitions out across workers and merges the results back
// in source order. Definitions share only the read-only parse tree, so the
// work is embarrassingly parallel.
func (a *Assembler) scoreAll(defs []model.Definition, source []byte, langName string) []model.RelevanceResult {
	if len(defs) == 0 {
		return nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(defs) {
		numWorkers = len(defs)
	}

	work := make(chan int, len(defs))
	results := make([]model.RelevanceResult, len(defs))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = a.scoreOne(defs, idx, source, langName)
			}
		}()
	}

	for i := range defs {
		work <- i
	}
	close(work)
	wg.Wait()

	return results
}

// scoreOne scores a single definition, recovering from any panic so one bad
// definition cannot abort its siblings.
func (a *Assembler) scoreOne(defs []model.Definition, idx int, source []byte, langName string) (res model.RelevanceResult) {
	def := defs[idx]
	res = model.RelevanceResult{
		Name: def.Name,
		Kind: def.Kind,
		Line: def.Line,
	}

	defer func() {
		if r := recover(); r != nil {
			res.Score = 0
			res.Unscored = true
			res.Reasons = []string{fmt.Sprintf("unscored: processing failed: %v", r)}
			res.Suggestions = suggest.Names(def, model.SemanticSignal{}, nil)
		}
	}()

	nameTokens := tokens.Split(def.Name)
	sig := signal.Build(langName, def, source)

	parentName := ""
	if def.Parent >= 0 && def.Parent < len(defs) {
		parentName = defs[def.Parent].Name
	}

	res.Score, res.Reasons = a.Rules.Score(score.Input{
		Name:       def.Name,
		Tokens:     nameTokens,
		Kind:       def.Kind,
		ParentName: parentName,
		Signal:     sig,
	})

	// Suggestions exist exactly when the score falls below the threshold.
	if res.Score < a.Rules.Threshold {
		res.Suggestions = suggest.Names(def, sig, nameTokens)
	}
	return res
}

func summarize(results []model.RelevanceResult, threshold float64) model.Summary {
	s := model.Summary{Definitions: len(results)}
	if len(results) == 0 {
		return s
	}
	total := 0.0
	for i := range results {
		total += results[i].Score
		if results[i].Score < threshold {
			s.BelowThreshold++
		}
	}
	s.OverallScore = total / float64(len(results))
	return s
}

// SelectWorst returns a copy of the report keeping only the n lowest-scoring
// results, in their original source order. If n <= 0 or exceeds the result
// count, the report is returned unchanged. The summary still describes the
// whole file.
func SelectWorst(rep *model.Report, n int) *model.Report {
	if n <= 0 || n >= len(rep.Results) {
		return rep
	}

	type ranked struct {
		idx   int
		score float64
	}
	order := make([]ranked, len(rep.Results))
	for i := range rep.Results {
		order[i] = ranked{idx: i, score: rep.Results[i].Score}
	}
	// Stable selection: lowest score first, ties by source order.
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if order[j].score < order[i].score ||
				(order[j].score == order[i].score && order[j].idx < order[i].idx) {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	keep := make(map[int]struct{}, n)
	for _, r := range order[:n] {
		keep[r.idx] = struct{}{}
	}

	out := *rep
	out.Results = nil
	for i := range rep.Results {
		if _, ok := keep[i]; ok {
			out.Results = append(out.Results, rep.Results[i])
		}
	}
	return &out
}
