package domain

import (
	"strings"
)

const ignoreDirective = "coverprobe:ignore"

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(adapter string) bool {
	if r.all {
		return true
	}

	if len(r.names) == 0 {
		return false
	}

	_, ok := r.names[strings.ToLower(adapter)]

	return ok
}

func (r ignoreRule) empty() bool {
	return !r.all && len(r.names) == 0
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

// parseIgnoreDirective reads "# coverprobe:ignore [adapter, ...]". Without
// adapter names every adapter is ignored.
func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s, ok := strings.CutPrefix(strings.TrimSpace(commentText), "#")
	if !ok {
		return ignoreRule{}, false
	}

	rest, ok := strings.CutPrefix(strings.TrimSpace(s), ignoreDirective)
	if !ok {
		return ignoreRule{}, false
	}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	parts := strings.Split(rest, ",")
	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		rule.all = true
		rule.names = nil
	}

	return rule, true
}

// IgnoreRules tells which adapters skip which functions of a program source.
//
// A directive group separated by a blank line from whatever follows it, and
// placed before the first function, applies to the whole source. A group
// directly above a function header, or a directive trailing the header,
// applies to that function only.
type IgnoreRules struct {
	file  ignoreRule
	funcs map[string]ignoreRule
}

// ParseIgnoreRules collects the ignore directives of an assembly source.
func ParseIgnoreRules(src string) IgnoreRules {
	rules := IgnoreRules{funcs: make(map[string]ignoreRule)}

	var group ignoreRule

	seenFunc := false

	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, "#"):
			if r, ok := parseIgnoreDirective(line); ok {
				mergeIgnoreRule(&group, r)
			}

			continue
		case line == "":
			if !seenFunc {
				mergeIgnoreRule(&rules.file, group)
			}

			group = ignoreRule{}

			continue
		}

		if name, ok := funcHeaderName(line); ok {
			seenFunc = true

			if i := strings.Index(line, "#"); i >= 0 {
				if r, ok := parseIgnoreDirective(line[i:]); ok {
					mergeIgnoreRule(&group, r)
				}
			}

			if !group.empty() {
				rules.funcs[name] = group
			}
		}

		group = ignoreRule{}
	}

	return rules
}

// Skips reports whether adapter must leave function uninstrumented.
func (r IgnoreRules) Skips(function, adapter string) bool {
	return r.file.ignores(adapter) || r.funcs[function].ignores(adapter)
}

func funcHeaderName(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "func ")
	if !ok {
		return "", false
	}

	name, _, found := strings.Cut(rest, "(")
	if !found {
		return "", false
	}

	return strings.TrimSpace(name), true
}
