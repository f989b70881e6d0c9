package search

import (
	"sort"
	"strings"
)

// TranslateExcludes turns host exclude patterns into the colon-delimited glob
// list consumed by the search scripts. Only entries set to boolean true are
// emitted; conditional (object-valued) and disabled entries are skipped.
// Colons separate terms because globs may contain spaces.
func TranslateExcludes(patterns map[string]any) string {
	keys := make([]string, 0, len(patterns))
	for k, v := range patterns {
		if enabled, ok := v.(bool); ok && enabled {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString("!")
		sb.WriteString(k)
		sb.WriteString(":")
	}
	return sb.String()
}
