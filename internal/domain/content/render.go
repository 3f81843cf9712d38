// Package content renders page templates and derives text fragments for generated pages.
package content

import (
	"sort"
	"strings"
)

// Render substitutes every `{key}` token for the keys present in variables.
// Tokens without a variable are left untouched and substituted values are never re-scanned.
func Render(template string, variables map[string]string) string {
	if template == "" || len(variables) == 0 {
		return template
	}

	keys := make([]string, 0, len(variables))
	for key := range variables {
		if key == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", variables[key])
	}

	return strings.NewReplacer(pairs...).Replace(template)
}
