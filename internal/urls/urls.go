// Package urls keeps a table of named routes so handlers and templates can
// build paths from a stable name instead of hard-coding them.
package urls

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrNoReverseMatch is returned when a name is unknown or the params do not
// fit the pattern.
var ErrNoReverseMatch = errors.New("no reverse match")

// Registry maps route names to chi-style path patterns such as
// "/" or "/users/{id}".
type Registry struct {
	mu       sync.RWMutex
	patterns map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{patterns: make(map[string]string)}
}

// Register records pattern under name. Registering the same name twice is a
// programming error and panics, like chi does for conflicting routes.
func (r *Registry) Register(name, pattern string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.patterns[name]; ok {
		panic(fmt.Sprintf("urls: route name %q registered twice", name))
	}
	r.patterns[name] = pattern
}

// Pattern returns the raw pattern registered under name.
func (r *Registry) Pattern(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patterns[name]
	return p, ok
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.patterns))
	for name := range r.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reverse builds the path for name, substituting {placeholders} positionally
// with params. A trailing "*" wildcard is dropped.
func (r *Registry) Reverse(name string, params ...string) (string, error) {
	pattern, ok := r.Pattern(name)
	if !ok {
		return "", fmt.Errorf("%w: unknown route %q", ErrNoReverseMatch, name)
	}

	var b strings.Builder
	next := 0
	rest := strings.TrimSuffix(pattern, "*")

	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: malformed pattern %q", ErrNoReverseMatch, pattern)
		}

		b.WriteString(rest[:open])
		if next >= len(params) {
			return "", fmt.Errorf("%w: route %q needs more than %d params", ErrNoReverseMatch, name, len(params))
		}
		b.WriteString(params[next])
		next++
		rest = rest[open+end+1:]
	}

	if next != len(params) {
		return "", fmt.Errorf("%w: route %q takes %d params, got %d", ErrNoReverseMatch, name, next, len(params))
	}

	return b.String(), nil
}
