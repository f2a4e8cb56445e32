package shader

import (
	"sort"
	"strconv"
	"strings"
)

// Diagnostic is one parsed entry from a compiler info log.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
}

// Info logs use the format "ERROR: <col>:<line>: <message>", one per line.
var diagPrefix = "ERROR:"

// ParseInfoLog extracts structured diagnostics from a raw shader info log,
// sorted by source order (line, then column). Lines that do not match the
// format are skipped; the raw log always travels alongside in the error
// value, so nothing is lost.
func ParseInfoLog(infoLog string) []Diagnostic {
	var diags []Diagnostic
	for _, line := range strings.Split(infoLog, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, diagPrefix) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, diagPrefix))
		parts := strings.SplitN(rest, ":", 3)
		if len(parts) != 3 {
			continue
		}
		col, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		lineNo, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}
		diags = append(diags, Diagnostic{
			Line:    lineNo,
			Column:  col,
			Message: strings.TrimSpace(parts[2]),
		})
	}
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Line != diags[j].Line {
			return diags[i].Line < diags[j].Line
		}
		return diags[i].Column < diags[j].Column
	})
	return diags
}
