// Package strings provides string and slice helpers
package strings

import std "strings"

// Or returns s when it has non whitespace content, otherwise def
func Or(s, def string) string {
	if std.TrimSpace(s) == "" {
		return def
	}
	return s
}

// AppendUnique appends each x not already present in dst, keeping first-seen order
func AppendUnique[T comparable](dst []T, xs ...T) []T {
	if len(xs) == 0 {
		return dst
	}
	seen := make(map[T]struct{}, len(dst)+len(xs))
	for _, d := range dst {
		seen[d] = struct{}{}
	}
	for _, x := range xs {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		dst = append(dst, x)
	}
	return dst
}

// LowerTrimmed lowercases and trims each entry, dropping blanks and duplicates
func LowerTrimmed(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if v := std.ToLower(std.TrimSpace(x)); v != "" {
			out = append(out, v)
		}
	}
	return AppendUnique[string](nil, out...)
}
