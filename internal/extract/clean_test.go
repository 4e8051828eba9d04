package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		sentinel string
		want     string
	}{
		{"no sentinel", "#a\n```", DefaultSentinel, "#a\n```"},
		{"cut at sentinel", "#a\n```\nContainer found, retrying", DefaultSentinel, "#a\n```\n"},
		{"first occurrence wins", "x Container found y Container found z", DefaultSentinel, "x "},
		{"sentinel at start", "Container found #a", DefaultSentinel, ""},
		{"empty sentinel", "Container found", "", "Container found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.text, tt.sentinel))
		})
	}
}

func TestTruncate_Law(t *testing.T) {
	bases := []string{"", "#def f(): pass\n```", "  \n", "prefix # body ``` tail"}
	suffixes := []string{"", "anything", "Container found again", "\n```"}
	for _, base := range bases {
		for _, suffix := range suffixes {
			got := Truncate(base+DefaultSentinel+suffix, DefaultSentinel)
			assert.Equal(t, Truncate(base, DefaultSentinel), got, "base=%q suffix=%q", base, suffix)
		}
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"scenario", "#def f(): pass\n```\n", "#def f(): pass\n```"},
		{"leading chatter", "Here you go:\n```python\n# solution\ndef f():\n    return 1\n```\nDone.", "# solution\ndef f():\n    return 1\n```"},
		{"last fence wins", "#a\n```\nmid\n```\ntrailing", "#a\n```\nmid\n```"},
		{"first hash wins", "x #one #two\n```", "#one #two\n```"},
		{"no hash", "def f():\n```", ""},
		{"no fence", "  #def f(): pass  \n", "#def f(): pass"},
		{"hash after last fence", "```\n# comment", ""},
		{"four backticks end after third", "#a````", "#a```"},
		{"six backticks are two fences", "#a``````", "#a``````"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.text))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"#def f(): pass\n```\n##########",
		"noise ``` more\n# body\n```\nafter",
		"#x````",
		"   #only a comment   ",
		"``#x````",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "input=%q", in)
	}
}

func TestCompletions(t *testing.T) {
	segments := []string{
		"#first\n```",
		"   \n\t",
		"#third\n```\nContainer found\n#retry\n```",
		"Container found #gone\n```",
		"no marker at all",
	}

	kept, dropped := Completions(segments, DefaultSentinel)

	assert.Equal(t, []string{"#first\n```", "#third\n```"}, kept)
	assert.Equal(t, 3, dropped)
}

func TestCompletions_Empty(t *testing.T) {
	kept, dropped := Completions(nil, DefaultSentinel)
	assert.Empty(t, kept)
	assert.NotNil(t, kept)
	assert.Zero(t, dropped)
}
