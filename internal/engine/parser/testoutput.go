package parser

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// BunTestParser parses `bun test` console output.
//
// Two block layouts are handled by one line-classifying state machine:
//
//   - newer runs close a failure block with a terminal marker carrying a
//     time annotation: `(fail) should add numbers [0.21ms]`
//   - older runs open a self-terminating block with a `✗` glyph or a
//     `FAIL <file>` line
//
// The trailer line (`5 pass`, `2 fail`) is authoritative for counts. An
// explicit `0 fail` trailer skips block extraction entirely so that
// "error:" lines printed by the code under test are never misread as
// failures.
type BunTestParser struct{}

// NewBunTestParser creates a new BunTestParser.
func NewBunTestParser() *BunTestParser {
	return &BunTestParser{}
}

var (
	// `(fail) case name [12.3ms]` — closes an open block, never opens one.
	terminalMarkerRe = regexp.MustCompile(`^\(fail\)\s+(.+?)\s+\[[\d.]+m?s\]$`)

	// Trailer tokens printed by the runner after all output.
	passCountRe = regexp.MustCompile(`(\d+)\s+pass`)
	failCountRe = regexp.MustCompile(`(\d+)\s+fail`)

	// Echoed source excerpts, e.g. `12 | expect(x).toBe(y)`.
	sourceEchoRe = regexp.MustCompile(`^\d+\s*\|`)
)

// Parse implements the Parser interface for bun test output.
func (p *BunTestParser) Parse(_ context.Context, output []byte, exitCode int) (*Result, error) {
	text := string(output)

	passed, passFound := firstCount(passCountRe, text)
	failed, failFound := firstCount(failCountRe, text)

	// Conclusive trailer: zero failures reported by the runner itself.
	// Skip block extraction — anything error-shaped in the body is noise.
	if failFound && failed == 0 {
		summary := &TestSummary{
			Passed: passed,
			Failed: 0,
			Total:  passed,
		}
		return &Result{Passed: exitCode == 0, Tests: summary}, nil
	}

	failures := extractFailures(text)

	// Trailer counts override detail-derived counts; the detailed list is
	// only a fallback when no trailer exists at all.
	if !failFound {
		failed = len(failures)
	}
	if !passFound {
		passed = 0
	}

	summary := &TestSummary{
		Passed:   passed,
		Failed:   failed,
		Total:    passed + failed,
		Failures: failures,
	}

	return &Result{
		Passed: failed == 0 && exitCode == 0,
		Tests:  summary,
	}, nil
}

// openBlock is the single accumulator of the block state machine. A block
// opened by a start marker is committed when it closes or input ends; a
// block opened tentatively by an orphan "error:" line is kept only if a
// terminal marker confirms it.
type openBlock struct {
	failure   TestFailure
	confirmed bool
	located   bool
}

// extractFailures walks the output line by line, classifying each line in
// priority order and feeding the single open accumulator.
func extractFailures(text string) []TestFailure {
	var failures []TestFailure
	var open *openBlock

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		// 1. Terminal marker: closes an open block, splicing the case
		// name into the front of the accumulated message.
		if m := terminalMarkerRe.FindStringSubmatch(line); m != nil {
			if open != nil {
				open.failure.Message = m[1] + "\n" + open.failure.Message
				failures = append(failures, open.failure)
				open = nil
			}
			continue
		}

		// 2. Start marker: commits any committed-style open block, then
		// opens a fresh one. A tentative block dies here unconfirmed.
		if strings.HasPrefix(line, "✗") || strings.HasPrefix(line, "FAIL ") {
			if open != nil && open.confirmed {
				failures = append(failures, open.failure)
			}
			open = &openBlock{
				failure:   TestFailure{File: "unknown", Message: line},
				confirmed: true,
			}
			continue
		}

		// 3. Bare diagnostic line: detail for an open block, or a
		// tentative block of its own. Orphan diagnostic lines never
		// silently count as failures — a tentative block is only kept
		// if a terminal marker later confirms it.
		if strings.HasPrefix(line, "error:") {
			if open != nil {
				open.failure.Message += "\n" + line
			} else {
				open = &openBlock{
					failure: TestFailure{File: "unknown", Message: line},
				}
			}
			continue
		}

		// 4. Stack frame: only meaningful inside a block. The first
		// resolving frame sets the location; every frame extends the
		// stack text.
		if strings.HasPrefix(line, "at ") {
			if open == nil {
				continue
			}
			if !open.located {
				if file, lineNo, _, ok := frameLocation(line); ok {
					open.failure.File = file
					open.failure.Line = lineNo
					open.located = true
				}
			}
			if open.failure.Stack != "" {
				open.failure.Stack += "\n"
			}
			open.failure.Stack += line
			continue
		}

		// 5. Echoed source context: skipped entirely.
		if sourceEchoRe.MatchString(line) {
			continue
		}

		// 6. Anything else inside a block is more message text.
		if open != nil {
			open.failure.Message += "\n" + line
		}
	}

	// End of input flushes start-marker blocks; tentative blocks are
	// discarded as noise.
	if open != nil && open.confirmed {
		failures = append(failures, open.failure)
	}

	return failures
}

// firstCount returns the integer captured by the first match of re in text.
func firstCount(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
