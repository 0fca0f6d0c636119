// Package sanitize guards network adapters against oversized or malformed words.
package sanitize

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxWordSize is the per-word byte limit used when none is configured.
const DefaultMaxWordSize = 4096

var (
	ErrWordTooLarge = errors.New("word exceeds maximum allowed size")
	ErrInvalidUTF8  = errors.New("word contains invalid UTF-8 sequences")
)

// Word checks a single word against the size limit and UTF-8 validity.
// Words are rejected, never truncated or rewritten, so the verdict always refers to
// the word the caller sent. A limit <= 0 selects DefaultMaxWordSize.
func Word(word string, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxWordSize
	}
	if len(word) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrWordTooLarge, len(word), limit)
	}
	if !utf8.ValidString(word) {
		return ErrInvalidUTF8
	}
	return nil
}

// Words checks every word and reports the index of the first offending one.
func Words(words []string, limit int) error {
	for i, w := range words {
		if err := Word(w, limit); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
	}
	return nil
}
