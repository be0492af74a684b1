package game

import (
	"fmt"
	"strings"

	"github.com/unisonhq/unison-backend/internal"
)

// NormalizeName trims, caps at 20 characters, and falls back to "Anonymous"
// when nothing usable remains.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if runes := []rune(name); len(runes) > internal.MaxNameLength {
		name = strings.TrimSpace(string(runes[:internal.MaxNameLength]))
	}
	if name == "" {
		return internal.FallbackName
	}
	return name
}

// DedupeName appends " (n)" with the smallest n >= 2 that is free among the
// taken names. Two Alices become "Alice" and "Alice (2)".
func DedupeName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", name, n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// NormalizeWord lowercases and trims a submission. An empty result means the
// submission is dropped.
func NormalizeWord(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
