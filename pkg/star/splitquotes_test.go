package star_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/andrew-torda/nmrstar/pkg/star"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`"A B" C 'D E'`, []string{"A B", "C", "D E"}},
		{`1  .  1  1  1  1  MET  HA  H  1  4.395  0.020  .  1`,
			[]string{"1", ".", "1", "1", "1", "1", "MET", "HA", "H", "1", "4.395", "0.020", ".", "1"}},
		{"a\tb   c", []string{"a", "b", "c"}},
		{`"A B"C`, []string{"A B", "C"}},
		{`H5' C1'`, []string{"H5'", "C1'"}},
		{`H5' 'x y'`, []string{"H5'", "x y"}},
		{`"unterminated x`, []string{`"unterminated`, "x"}},
		{`'' ""`, []string{"", ""}},
		{`'it"s' fine`, []string{`it"s`, "fine"}},
		{"   ", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := SplitLine(tt.in, nil)
		if len(tt.want) == 0 {
			assert.Empty(t, got, "input %q", tt.in)
			continue
		}
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

// The scratch slice is reused, so results must be used before the next call.
func TestSplitLineScratch(t *testing.T) {
	scrtch := make([]string, 0, 2)
	a := SplitLine("x y z", scrtch)
	assert.Equal(t, []string{"x", "y", "z"}, a)
	b := SplitLine("p", a)
	assert.Equal(t, []string{"p"}, b)
}

func TestUnquote(t *testing.T) {
	ss := []struct{ in, out string }{
		{`'polypeptide(L)'`, "polypeptide(L)"},
		{`"A B"`, "A B"},
		{`plain`, "plain"},
		{`'half`, "half"},
		{`"'twice'"`, "'twice'"},
		{`'`, ""},
		{``, ``},
	}
	for _, s := range ss {
		assert.Equal(t, s.out, Unquote(s.in), "input %q", s.in)
	}
}
