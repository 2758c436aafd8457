package schema

import (
	"strings"

	"github.com/gnames/gnlib"
)

// NormText repairs invalid UTF-8 and trims surrounding space.
func NormText(s string) string {
	return strings.TrimSpace(gnlib.FixUtf8(s))
}

// NormPtr applies NormText and turns empty strings into nil.
func NormPtr(s *string) *string {
	if s == nil {
		return nil
	}
	res := NormText(*s)
	if res == "" {
		return nil
	}
	return &res
}

// NormKey returns the case-insensitive comparison key of s.
func NormKey(s string) string {
	return strings.ToLower(NormText(s))
}

// NormSet normalises ss, drops blanks and removes case-insensitive
// duplicates keeping the first spelling.
func NormSet(ss []string) []string {
	res := make([]string, 0, len(ss))
	seen := make(map[string]struct{}, len(ss))
	for _, v := range ss {
		v = NormText(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		res = append(res, v)
	}
	return res
}

// EqualFoldPtr compares two optional names ignoring case.
func EqualFoldPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return strings.EqualFold(*a, *b)
}
