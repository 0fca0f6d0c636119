package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
)

// DefaultExtension is the file extension used for definitions when none is configured.
const DefaultExtension = ".dfa"

// Source implements ports.DefinitionSource over a directory of definition files.
type Source struct {
	BasePath  string
	Extension string
}

// NewSource creates a source rooted at basePath.
// If basePath is empty, it defaults to the current directory.
func NewSource(basePath string) *Source {
	if basePath == "" {
		basePath = "."
	}
	return &Source{BasePath: basePath, Extension: DefaultExtension}
}

// Read returns the content of the named definition.
// The name is resolved relative to BasePath, first as given and then with Extension appended.
// Any failure to open the file, including names escaping BasePath, is a *domain.NotFoundError.
func (s *Source) Read(ctx context.Context, name string) ([]byte, error) {
	if name == "" || !filepath.IsLocal(name) {
		return nil, &domain.NotFoundError{Name: name, Err: fs.ErrInvalid}
	}

	candidates := []string{filepath.Join(s.BasePath, name)}
	if filepath.Ext(name) == "" && s.Extension != "" {
		candidates = append(candidates, filepath.Join(s.BasePath, name+s.Extension))
	}

	var lastErr error
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}
	return nil, &domain.NotFoundError{Name: name, Err: lastErr}
}

// List returns the names (without extension) of all definition files under BasePath.
func (s *Source) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != s.Extension {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), s.Extension))
	}
	sort.Strings(names)
	return names, nil
}
