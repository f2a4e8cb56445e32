package shader

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationResult carries advisory findings from a heuristic scan of a
// fragment source. Errors identify sources that will certainly fail to
// compile; warnings are style or likely-mistake hints. Validation never
// blocks compilation.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// OK reports whether validation found no hard errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

var mainRe = regexp.MustCompile(`void\s+main\s*\(`)

// Common token misspellings seen in user shaders, checked verbatim.
var typoTable = []struct {
	typo, correct string
}{
	{"texure2D", "texture2D"},
	{"textrue2D", "texture2D"},
	{"gl_FragColour", "gl_FragColor"},
	{"gl_fragColor", "gl_FragColor"},
	{"unifrom", "uniform"},
	{"varing", "varying"},
	{"precison", "precision"},
	{"vodi", "void"},
}

// Validate runs heuristic static checks over a user fragment source:
// a missing precision qualifier (warning), a missing main entry point
// (error), no write to the color output (warning), and the fixed table of
// common token typos (warning per match).
func Validate(fragmentSource string) ValidationResult {
	var r ValidationResult

	if !strings.Contains(fragmentSource, "precision") {
		r.Warnings = append(r.Warnings, "no precision qualifier declared; add e.g. \"precision mediump float;\"")
	}
	if !mainRe.MatchString(fragmentSource) {
		r.Errors = append(r.Errors, "no void main() entry point; the shader cannot compile without one")
	}
	if !strings.Contains(fragmentSource, "gl_FragColor") {
		r.Warnings = append(r.Warnings, "gl_FragColor is never written; the shader will not produce a color")
	}
	for _, t := range typoTable {
		if strings.Contains(fragmentSource, t.typo) {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%q looks like a typo of %q", t.typo, t.correct))
		}
	}
	return r
}
