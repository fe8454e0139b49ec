package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		command  string
		expected []string
	}{
		{"", nil},
		{"   \t ", nil},
		{"echo", []string{"echo"}},
		{"echo hi", []string{"echo", "hi"}},
		{`ab "c d" 'e f' g`, []string{"ab", "c d", "e f", "g"}},
		{"  tr\ta-z \t A-Z  ", []string{"tr", "a-z", "A-Z"}},
		{`sh -c 'echo "x" 1>&2'`, []string{"sh", "-c", `echo "x" 1>&2`}},
		{`"unterminated token`, []string{"unterminated token"}},
		{`""`, []string{""}},
		{`"ab"cd`, []string{"ab", "cd"}},
		{`a"b c"`, []string{`a"b`, `c"`}},
		{`'it\'s'`, []string{`it\`, `s'`}},
	}

	for _, tc := range cases {
		t.Run(tc.command, func(t *testing.T) {
			assert.Equal(t, tc.expected, Tokenize(tc.command))
		})
	}
}

func TestTokenizeTruncates(t *testing.T) {
	command := strings.Repeat("x ", MaxTokens+10)
	args := Tokenize(command)
	assert.Len(t, args, MaxTokens)
}
