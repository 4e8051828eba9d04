package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const qwenPattern = `QWEN2\.5-CODER(.*?)(?=##################################################)`

const separator = "##################################################"

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`(unclosed`, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile pattern")
}

func TestSegments_EmptyPattern(t *testing.T) {
	p, err := Compile("", 0)
	require.NoError(t, err)

	segments, err := p.Segments("ab")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "", ""}, segments)

	kept, dropped := Completions(segments, DefaultSentinel)
	assert.Empty(t, kept)
	assert.Equal(t, 3, dropped)
}

func TestSegments_Lookahead(t *testing.T) {
	p, err := Compile(qwenPattern, 0)
	require.NoError(t, err)
	assert.Equal(t, qwenPattern, p.String())

	text := "QWEN2.5-CODER#def f(): pass\n```\n" + separator
	segments, err := p.Segments(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"#def f(): pass\n```\n"}, segments)
}

func TestSegments_MultilineInOrder(t *testing.T) {
	p, err := Compile(qwenPattern, 0)
	require.NoError(t, err)

	text := "header\nQWEN2.5-CODER\none\nline two\n" + separator + "\n" +
		"QWEN2.5-CODER two" + separator + "\n" +
		"QWEN2.5-CODER three\n" + separator + "\n" +
		"QWEN2.5-CODER unterminated"
	segments, err := p.Segments(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"\none\nline two\n", " two", " three\n"}, segments)
}

func TestSegments_NoMatch(t *testing.T) {
	p, err := Compile(qwenPattern, 0)
	require.NoError(t, err)

	segments, err := p.Segments("nothing to see here")
	require.NoError(t, err)
	assert.Empty(t, segments)
}

func TestSegments_GroupSelection(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []string
	}{
		{"no groups uses whole match", `a.b`, "a\nb axb", []string{"a\nb", "axb"}},
		{"first of several groups", `(\w)=(\d)`, "x=1 y=2", []string{"x", "y"}},
		{"optional group unmatched", `k(\d)?;`, "k1; k;", []string{"1", ""}},
		{"python named group", `(?P<x>a)(b)`, "ab", []string{"a"}},
		{"dotnet named group first", `(?<x>a)(b)`, "ab", []string{"a"}},
		{"quoted named group first", `(?'x'a)(b)`, "ab", []string{"a"}},
		{"unnamed before named", `(a)(?P<y>b)`, "ab", []string{"a"}},
		{"non-capturing and lookbehind skipped", `(?:x)(?<=x)(?P<n>y)(z)`, "xyz", []string{"y"}},
		{"escaped paren and class skipped", `\((?P<v>\d)[(]([a-z])`, "(1(q", []string{"1"}},
		{"comment skipped", `(?#ignored)(?P<c>c)(d)`, "cd", []string{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern, 0)
			require.NoError(t, err)
			got, err := p.Segments(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegments_Timeout(t *testing.T) {
	p, err := Compile(`(a+)+$`, time.Millisecond)
	require.NoError(t, err)

	_, err = p.Segments(strings.Repeat("a", 40) + "!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match pattern")
}
