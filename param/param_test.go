package param_test

import (
	"reflect"
	"testing"

	"github.com/opsbook-cli/opsbook/param"
)

func TestExtract(t *testing.T) {

	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:  "no params",
			input: "No parameters here!",
		},
		{
			name:     "param with alphabets",
			input:    `srun --jobid=<jobid> --pty bash`,
			expected: []string{"<jobid>"},
		},
		{
			name:     "param with numbers",
			input:    `script --id="<id1>" --name="<name2>"`,
			expected: []string{"<id1>", "<name2>"},
		},
		{
			name:     "incomplete param",
			input:    "Edge case with incomplete <param and another<param2>",
			expected: []string{"<param2>"},
		},
		{
			name:     "param with hyphen, underscore",
			input:    `conda create -n <env-name> python=3.8 && echo "<log_file>"`,
			expected: []string{"<env-name>", "<log_file>"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := param.Extract(tc.input)
			if !reflect.DeepEqual(actual, tc.expected) {
				t.Errorf("expected %v; got %v", tc.expected, actual)
			}
		})
	}
}
