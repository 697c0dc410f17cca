package llm

import (
	"fmt"

	"github.com/tsgate/tsgate/internal/engine/parser"
)

// FilterAdvice drops advice entries that do not match any actual diagnostic.
// This mitigates LLM hallucinations where the model invents issues in files
// or on lines that no tool reported.
func FilterAdvice(advice []Advice, diags []parser.Diagnostic) []Advice {
	known := make(map[string]bool, len(diags))
	for _, d := range diags {
		known[locationKey(d.File, d.Line)] = true
	}

	var kept []Advice
	for _, a := range advice {
		if !known[locationKey(a.File, a.Line)] {
			continue
		}
		if a.Explanation == "" {
			continue
		}
		kept = append(kept, a)
	}

	return kept
}

// ApplyAdvice writes matching advice into each diagnostic's Suggestion field.
// Diagnostics that already carry a suggestion from the tool keep it.
func ApplyAdvice(diags []parser.Diagnostic, advice []Advice) []parser.Diagnostic {
	byLocation := make(map[string]Advice, len(advice))
	for _, a := range advice {
		byLocation[locationKey(a.File, a.Line)] = a
	}

	out := make([]parser.Diagnostic, len(diags))
	copy(out, diags)
	for i := range out {
		if out[i].Suggestion != "" {
			continue
		}
		a, ok := byLocation[locationKey(out[i].File, out[i].Line)]
		if !ok {
			continue
		}
		out[i].Suggestion = a.Explanation
		if a.Fix != "" {
			out[i].Suggestion += " Fix: " + a.Fix
		}
	}

	return out
}

func locationKey(file string, line int) string {
	return fmt.Sprintf("%s:%d", file, line)
}
