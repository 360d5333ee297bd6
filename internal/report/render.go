package report

import (
	"fmt"
	"io"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
)

// Render prints a report in the console format: one line per definition with
// its score, plus reasons and suggestions for definitions under the
// threshold (or for all of them when detailed is set).
func Render(w io.Writer, rep *model.Report, threshold float64, detailed bool) {
	fmt.Fprintln(w, "===== NAME RELEVANCE ANALYSIS =====")
	fmt.Fprintf(w, "source:  %s\n", rep.SourcePath)
	fmt.Fprintf(w, "overall: %.2f/1.00 (%d definitions, %d below threshold, ruleset %s)\n\n",
		rep.Summary.OverallScore, rep.Summary.Definitions, rep.Summary.BelowThreshold, rep.RulesetVersion)

	for i := range rep.Results {
		res := &rep.Results[i]

		first := ""
		if len(res.Reasons) > 0 {
			first = " - " + res.Reasons[0]
		}
		fmt.Fprintf(w, "  %s [%s]: %.2f/1.00%s\n", res.Name, res.Kind, res.Score, first)

		if !detailed && res.Score >= threshold {
			continue
		}
		for _, reason := range rest(res.Reasons) {
			fmt.Fprintf(w, "      reason: %s\n", reason)
		}
		for _, s := range res.Suggestions {
			fmt.Fprintf(w, "      suggestion: %s\n", s)
		}
	}
}

func rest(reasons []string) []string {
	if len(reasons) <= 1 {
		return nil
	}
	return reasons[1:]
}
