// Package slug derives URL-safe identifiers from display names and resolves
// them back to the records they were derived from.
package slug

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNotFound  = errors.New("slug not found")
	ErrAmbiguous = errors.New("slug matches more than one record")
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Make lower-cases name, collapses every run of characters outside [a-z0-9]
// into one hyphen and trims hyphens from both ends. Names made only of
// symbols yield "".
func Make(name string) string {
	lowered := strings.ToLower(name)
	hyphenated := nonAlphanumeric.ReplaceAllString(lowered, "-")
	return strings.Trim(hyphenated, "-")
}

// Index maps slugs to the records of one fetched collection. It is built once
// and then answers lookups without rescanning the collection.
type Index[T any] struct {
	entries map[string][]T
}

func NewIndex[T any](items []T, name func(T) string) *Index[T] {
	idx := &Index[T]{entries: make(map[string][]T, len(items))}
	for _, item := range items {
		key := Make(name(item))
		if key == "" {
			continue
		}
		idx.entries[key] = append(idx.entries[key], item)
	}
	return idx
}

// Lookup returns the single record whose name slugifies to s.
func (idx *Index[T]) Lookup(s string) (T, error) {
	var zero T
	if idx == nil {
		return zero, ErrNotFound
	}
	matches := idx.entries[strings.TrimSpace(s)]
	switch len(matches) {
	case 0:
		return zero, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return zero, ErrAmbiguous
	}
}

// Collisions returns every slug shared by more than one record.
func (idx *Index[T]) Collisions() []string {
	if idx == nil {
		return nil
	}
	var out []string
	for key, matches := range idx.entries {
		if len(matches) > 1 {
			out = append(out, key)
		}
	}
	return out
}

func (idx *Index[T]) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}
