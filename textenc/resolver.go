package textenc

import (
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/encoding"
)

// Resolver memoizes encoding lookups. It exists for callers that
// resolve the same handful of names over and over, such as a directory
// conversion run. Each Resolver owns its cache and synchronizes
// internally, so independent instances never share state; construct
// one per component instead of reaching for anything process-wide.
type Resolver struct {
	cache *lru.Cache[string, encoding.Encoding]
}

// defaultCacheSize bounds the memoized name set. The WHATWG index has
// well under 256 distinct labels.
const defaultCacheSize = 64

// NewResolver returns a Resolver with a bounded lookup cache. A size
// of zero or less selects the default.
func NewResolver(size int) (*Resolver, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, encoding.Encoding](size)
	if err != nil {
		return nil, err
	}
	return &Resolver{cache: cache}, nil
}

// Resolve behaves like the package-level Resolve with memoization.
func (r *Resolver) Resolve(name string) (encoding.Encoding, error) {
	key := normalize(name)
	if enc, ok := r.cache.Get(key); ok {
		return enc, nil
	}
	enc, err := Resolve(key)
	if err != nil {
		return nil, err
	}
	r.cache.Add(key, enc)
	return enc, nil
}

// NewReader behaves like the package-level NewReader, resolving the
// encoding through the cache.
func (r *Resolver) NewReader(rd io.Reader, name string, detectBOM bool) (io.Reader, error) {
	enc, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return wrapReader(rd, enc, detectBOM), nil
}

// NewWriter behaves like the package-level NewWriter, resolving the
// encoding through the cache.
func (r *Resolver) NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	enc, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return wrapWriter(w, enc), nil
}
