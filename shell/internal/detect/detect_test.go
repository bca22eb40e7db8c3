package detect

import (
	"testing"
)

func TestParseCommand(t *testing.T) {
	testCases := []struct {
		rawCommandAndArgs string
		expected          string
	}{
		{
			rawCommandAndArgs: "-zsh",
			expected:          "zsh",
		},
		{
			rawCommandAndArgs: "tmux attach -t work",
			expected:          "tmux",
		},
		{
			rawCommandAndArgs: "/bin/zsh -il",
			expected:          "zsh",
		},
		{
			rawCommandAndArgs: "/usr/lib/node_modules/.bin/node server.js",
			expected:          "node",
		},
		{
			rawCommandAndArgs: "nvim main.go",
			expected:          "nvim",
		},
		{
			rawCommandAndArgs: "sh -c 'fzf' --border --ansi --tiebreak=begin --header-lines=1",
			expected:          "sh",
		},
	}

	for _, tc := range testCases {
		got := parseCommand(tc.rawCommandAndArgs)
		if got != tc.expected {
			t.Errorf("wrong output for parseCommand(%s). expected %s, got %s", tc.rawCommandAndArgs, tc.expected, got)
		}
	}
}
