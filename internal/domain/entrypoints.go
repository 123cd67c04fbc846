package domain

import (
	"regexp"
	"sort"

	"foundry.dev/pkg/foundry/internal/engine"
)

var entrypointPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(engine.MainScope) + `\.(test_\w+)$`)

// DiscoverEntrypoints returns the short names of the test functions of
// program, sorted.
func DiscoverEntrypoints(program *engine.Program) []string {
	var names []string

	for name, id := range program.Identifiers {
		if id.Type != engine.IdentifierFunction {
			continue
		}

		match := entrypointPattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}

		names = append(names, match[1])
	}

	sort.Strings(names)

	return names
}
