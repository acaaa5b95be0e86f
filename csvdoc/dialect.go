package csvdoc

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidDialect is returned when a dialect fails validation.
var ErrInvalidDialect = errors.New("invalid dialect")

// ErrUnknownDialect is returned when a registry lookup fails.
var ErrUnknownDialect = errors.New("unknown dialect")

// Dialect is a named, fully specified wire configuration. Unlike
// Options, a Dialect carries no "fill in a default later" holes: every
// field is validated once, at registration, rather than checked ad hoc
// wherever it is consumed.
type Dialect struct {
	Name        string
	Delimiter   rune
	Escape      rune
	Newline     string
	CellNewline string
}

// Validate reports whether the dialect is internally consistent.
func (d Dialect) Validate() error {
	switch {
	case strings.TrimSpace(d.Name) == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidDialect)
	case d.Delimiter == 0:
		return fmt.Errorf("%w %q: delimiter must be set", ErrInvalidDialect, d.Name)
	case d.Escape == 0:
		return fmt.Errorf("%w %q: escape must be set", ErrInvalidDialect, d.Name)
	case d.Delimiter == d.Escape:
		return fmt.Errorf("%w %q: delimiter and escape must differ", ErrInvalidDialect, d.Name)
	case strings.ContainsRune(d.Newline, d.Delimiter):
		return fmt.Errorf("%w %q: newline contains the delimiter", ErrInvalidDialect, d.Name)
	case strings.ContainsRune(d.Newline, d.Escape):
		return fmt.Errorf("%w %q: newline contains the escape character", ErrInvalidDialect, d.Name)
	}
	return nil
}

// Options converts the dialect to codec options.
func (d Dialect) Options() Options {
	return Options{
		Delimiter:   d.Delimiter,
		Escape:      d.Escape,
		Newline:     d.Newline,
		CellNewline: d.CellNewline,
	}.withDefaults()
}

// Registry is a named-dialect lookup table. Every Registry owns its
// map and guards it with a mutex; construct one per component rather
// than sharing a process-wide instance, so tests and concurrent
// pipelines stay independent.
type Registry struct {
	mu       sync.RWMutex
	dialects map[string]Dialect
}

// NewRegistry returns a Registry seeded with the built-in dialects:
// "excel" (comma, CRLF), "excel-tab" (tab, CRLF) and "unix" (comma,
// LF).
func NewRegistry() *Registry {
	r := &Registry{dialects: make(map[string]Dialect)}
	for _, d := range builtinDialects() {
		// Built-ins validate by construction.
		r.dialects[d.Name] = d
	}
	return r
}

func builtinDialects() []Dialect {
	return []Dialect{
		{Name: "excel", Delimiter: ',', Escape: '"', Newline: "\r\n", CellNewline: "\n"},
		{Name: "excel-tab", Delimiter: '\t', Escape: '"', Newline: "\r\n", CellNewline: "\n"},
		{Name: "unix", Delimiter: ',', Escape: '"', Newline: "\n", CellNewline: "\n"},
	}
}

// Register validates d and adds it to the registry, replacing any
// dialect with the same name. Names are case-insensitive.
func (r *Registry) Register(d Dialect) error {
	if err := d.Validate(); err != nil {
		return err
	}
	key := strings.ToLower(d.Name)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dialects[key] = d
	return nil
}

// Lookup returns the dialect registered under name.
func (r *Registry) Lookup(name string) (Dialect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.dialects[strings.ToLower(name)]
	if !ok {
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return d, nil
}

// Names returns the registered dialect names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.dialects))
	for name := range r.dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
