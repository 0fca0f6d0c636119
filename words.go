package automata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxWordLine bounds a single line of a words file.
const maxWordLine = 1 << 20

// ReadWords reads one word per line. Blank lines are the empty word; a trailing newline
// at the end of the input does not add one. Carriage returns before the newline are dropped.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxWordLine)
	for scanner.Scan() {
		words = append(words, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read words: %w", err)
	}
	return words, nil
}
