package sanitize_test

import (
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/sanitize"
	"github.com/stretchr/testify/assert"
)

func TestWord(t *testing.T) {
	tests := []struct {
		name  string
		word  string
		limit int
		want  error
	}{
		{"Empty word", "", 10, nil},
		{"Unicode", "αβγ", 10, nil},
		{"At limit", "abcd", 4, nil},
		{"Too large", "abcde", 4, sanitize.ErrWordTooLarge},
		{"Default limit", strings.Repeat("a", sanitize.DefaultMaxWordSize+1), 0, sanitize.ErrWordTooLarge},
		{"Invalid UTF-8", "a\xffb", 10, sanitize.ErrInvalidUTF8},
		{"Control characters are kept", "a\x1bb", 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sanitize.Word(tt.word, tt.limit)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWords_ReportsIndex(t *testing.T) {
	err := sanitize.Words([]string{"ok", "fine", "\xff"}, 10)
	assert.ErrorIs(t, err, sanitize.ErrInvalidUTF8)
	assert.Contains(t, err.Error(), "word 2")

	assert.NoError(t, sanitize.Words(nil, 10))
}
