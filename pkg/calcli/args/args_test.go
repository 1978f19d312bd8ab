package args

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmpty(t *testing.T) {
	p := Parse(nil)
	assert.Equal(t, "", p.Command)
	assert.Empty(t, p.Positional)
	assert.False(t, p.Has("anything"))

	p = Parse([]string{})
	assert.Equal(t, "", p.Command)
}

func TestParseCommandAndPositionals(t *testing.T) {
	p := Parse([]string{"search", "team", "standup"})
	assert.Equal(t, "search", p.Command)
	assert.Equal(t, []string{"team", "standup"}, p.Positional)
}

func TestParseOptionForms(t *testing.T) {
	// --opt value, --opt=value and the short alias must all coincide.
	forms := [][]string{
		{"today", "--calendar", "work"},
		{"today", "--calendar=work"},
		{"today", "-c", "work"},
	}
	for _, argv := range forms {
		p := Parse(argv)
		assert.Equal(t, "work", p.String("calendar"), "argv=%v", argv)
	}
}

func TestParseFlagBeforeFlag(t *testing.T) {
	// A flag-like next token is never consumed as a value.
	p := Parse([]string{"today", "--summary", "--calendar", "work"})
	assert.True(t, p.Bool("summary"))
	assert.Equal(t, "work", p.String("calendar"))

	p = Parse([]string{"today", "--calendar", "--summary"})
	assert.Equal(t, "true", p.String("calendar"))
	assert.True(t, p.Bool("summary"))
}

func TestParseTrailingFlag(t *testing.T) {
	p := Parse([]string{"upcoming", "--summary"})
	assert.True(t, p.Bool("summary"))
	assert.Equal(t, "true", p.String("summary"))
}

func TestParseEqualsSplitsOnFirst(t *testing.T) {
	p := Parse([]string{"search", "x", "--query=a=b"})
	assert.Equal(t, "a=b", p.String("query"))
}

func TestParsePositionalAfterOption(t *testing.T) {
	p := Parse([]string{"upcoming", "--summary", "14"})
	// "14" is consumed as the option's value, matching the grammar: the
	// value rule wins over positional collection.
	assert.Equal(t, "14", p.String("summary"))

	p = Parse([]string{"upcoming", "14", "--summary"})
	assert.Equal(t, []string{"14"}, p.Positional)
	assert.True(t, p.Bool("summary"))
}

func TestParseUnknownOptionsKept(t *testing.T) {
	p := Parse([]string{"today", "--whatever", "thing"})
	assert.Equal(t, "thing", p.String("whatever"))
}

func TestAliasCanonicalization(t *testing.T) {
	p := Parse([]string{"upcoming", "-d", "14", "-y"})
	assert.Equal(t, 14, p.Int("days", 7))
	assert.True(t, p.Bool("yes"))
	assert.False(t, p.Has("d"))
}

func TestIntFallback(t *testing.T) {
	p := Parse([]string{"today", "--max", "nope"})
	assert.Equal(t, 50, p.Int("max", 50))
	assert.Equal(t, 7, p.Int("days", 7))
}

func TestBoolExplicitFalse(t *testing.T) {
	p := Parse([]string{"today", "--summary=false"})
	assert.True(t, p.Has("summary"))
	assert.False(t, p.Bool("summary"))
}

func TestParseStdinMarker(t *testing.T) {
	p := Parse([]string{"import", "-", "--dry-run"})
	assert.Equal(t, "import", p.Command)
	assert.Equal(t, []string{"-"}, p.Positional)
	assert.True(t, p.Bool("dry-run"))
}

func TestParseNeverPanics(t *testing.T) {
	// Degenerate tokens must all parse to something well-formed.
	for _, argv := range [][]string{
		{"-"},
		{"--"},
		{"--="},
		{"--=x"},
		{"", "cmd", ""},
		{"--a", "--b", "--c=d", "-e"},
	} {
		assert.NotPanics(t, func() { Parse(argv) }, "argv=%v", argv)
	}
}
