package wordlist

import "unicode/utf8"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// MaxLen keeps words of at most n characters.
func MaxLen(n int) FilterFunc {
	return func(word string) bool {
		return utf8.RuneCountInString(word) <= n
	}
}

// MinLen keeps words of at least n characters.
func MinLen(n int) FilterFunc {
	return func(word string) bool {
		return utf8.RuneCountInString(word) >= n
	}
}

// Filter returns the words accepted by keep, preserving order.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if keep(word) {
			out = append(out, word)
		}
	}
	return out
}
