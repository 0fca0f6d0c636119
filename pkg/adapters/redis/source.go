package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultDefinitionPrefix namespaces definition keys.
const DefaultDefinitionPrefix = "automata:definition:"

// Source implements ports.DefinitionSource over Redis strings.
// Definitions live under <prefix>def:<name>; their names are tracked in the set <prefix>names
// so List does not need KEYS/SCAN.
type Source struct {
	client *backend.Client
	prefix string
}

// NewSource creates a definition source. An empty prefix selects DefaultDefinitionPrefix.
func NewSource(client *backend.Client, prefix string) *Source {
	if prefix == "" {
		prefix = DefaultDefinitionPrefix
	}
	return &Source{client: client, prefix: prefix}
}

func (s *Source) key(name string) string {
	return s.prefix + "def:" + name
}

func (s *Source) indexKey() string {
	return s.prefix + "names"
}

// Put stores a raw definition under name.
func (s *Source) Put(ctx context.Context, name string, data []byte) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.key(name), data, 0)
	pipe.SAdd(ctx, s.indexKey(), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store definition %s: %w", name, err)
	}
	return nil
}

// Read returns the raw definition stored under name.
func (s *Source) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, &domain.NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("failed to read definition %s: %w", name, err)
	}
	return data, nil
}

// List returns every stored definition name, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
