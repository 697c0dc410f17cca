package parser

import (
	"regexp"
	"strconv"
)

// Stack frame shapes, tried in order:
//
//	at fn (src/app.ts:4:38)   — location in parentheses, anywhere in the line
//	at src/app.ts:4:38        — bare location at the start of the line
var (
	parenFrameRe = regexp.MustCompile(`\(([^()\s]+):(\d+):(\d+)\)`)
	bareFrameRe  = regexp.MustCompile(`^at ([^()\s]+):(\d+):(\d+)`)
)

// frameLocation extracts a (file, line, column) triple from a single
// stack-frame-shaped line. The first matching shape wins.
func frameLocation(line string) (file string, lineNo, col int, ok bool) {
	m := parenFrameRe.FindStringSubmatch(line)
	if m == nil {
		m = bareFrameRe.FindStringSubmatch(line)
	}
	if m == nil {
		return "", 0, 0, false
	}

	lineNo, _ = strconv.Atoi(m[2])
	col, _ = strconv.Atoi(m[3])
	return m[1], lineNo, col, true
}
