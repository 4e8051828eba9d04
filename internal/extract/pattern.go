// Package extract pulls completions out of inference-log text and cleans them.
package extract

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/rotisserie/eris"
)

// Pattern is a compiled segment matcher. Dot matches newlines, lookahead
// terminators such as (?=#####) are supported, and named groups may be
// written as (?P<name>...) or (?<name>...).
type Pattern struct {
	expr string
	re   *regexp2.Regexp

	// grouped is false when the whole match is the segment. Otherwise the
	// segment is the capture group that opens first in expr: the named group
	// groupName, or group 1 when that name is empty.
	grouped   bool
	groupName string
}

// Compile compiles expr in single-line mode. A zero timeout lets a match run
// to completion. An empty expression is valid and matches only empty strings.
func Compile(expr string, timeout time.Duration) (*Pattern, error) {
	re, err := regexp2.Compile(expr, regexp2.Singleline|regexp2.RE2)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: compile pattern %q", expr)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}

	p := &Pattern{expr: expr, re: re}
	if len(re.GetGroupNumbers()) > 1 {
		p.grouped = true
		p.groupName = firstGroupName(expr)
	}
	return p, nil
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.expr
}

// Segments returns every non-overlapping match in text, in order. When the
// pattern has capture groups the group that opens first is returned,
// otherwise the whole match. A group that did not participate yields "".
func (p *Pattern) Segments(text string) ([]string, error) {
	var segments []string

	m, err := p.re.FindStringMatch(text)
	for m != nil && err == nil {
		segments = append(segments, p.segmentOf(m))
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return nil, eris.Wrap(err, "extract: match pattern")
	}
	return segments, nil
}

func (p *Pattern) segmentOf(m *regexp2.Match) string {
	if !p.grouped {
		return m.String()
	}
	var g *regexp2.Group
	if p.groupName != "" {
		g = m.GroupByName(p.groupName)
	} else {
		g = m.GroupByNumber(1)
	}
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}

// firstGroupName scans expr for the leftmost capturing group and returns its
// name, or "" when it is unnamed. Unnamed groups are numbered ahead of named
// ones, so a leftmost unnamed group is always group 1.
func firstGroupName(expr string) string {
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '\\':
			i++
		case '[':
			i = classEnd(expr, i)
		case '(':
			rest := expr[i+1:]
			if !strings.HasPrefix(rest, "?") {
				return ""
			}
			if name, ok := parseGroupName(rest[1:]); ok {
				return name
			}
			if strings.HasPrefix(rest, "?#") {
				if end := strings.IndexByte(rest, ')'); end >= 0 {
					i += end + 1
				}
			}
		}
	}
	return ""
}

// parseGroupName reports the name of a (?P<name>, (?<name> or (?'name' opener.
// s starts just after "(?".
func parseGroupName(s string) (string, bool) {
	s = strings.TrimPrefix(s, "P")
	if s == "" {
		return "", false
	}
	var closer byte
	switch s[0] {
	case '<':
		closer = '>'
	case '\'':
		closer = '\''
	default:
		return "", false
	}
	// (?<= and (?<! are lookbehinds.
	if len(s) > 1 && (s[1] == '=' || s[1] == '!') {
		return "", false
	}
	end := strings.IndexByte(s[1:], closer)
	if end <= 0 {
		return "", false
	}
	return s[1 : 1+end], true
}

// classEnd returns the index of the ']' closing the class opened at i.
func classEnd(expr string, i int) int {
	j := i + 1
	if j < len(expr) && expr[j] == '^' {
		j++
	}
	if j < len(expr) && expr[j] == ']' {
		j++
	}
	for ; j < len(expr); j++ {
		switch expr[j] {
		case '\\':
			j++
		case ']':
			return j
		}
	}
	return len(expr)
}
