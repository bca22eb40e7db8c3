package param

import "regexp"

var paramRegex = regexp.MustCompile(`<([a-zA-Z0-9-_]+)>`)

// Extract returns every <placeholder> parameter in input, in order of
// appearance.
func Extract(input string) []string {
	matches := paramRegex.FindAllStringSubmatch(input, -1)

	var params []string
	for _, match := range matches {
		if len(match) >= 1 {
			params = append(params, match[0])
		}
	}
	return params
}
