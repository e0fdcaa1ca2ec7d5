// Package hints stores test-provided dimension overrides keyed by identity key.
package hints

import (
	"net/url"
	"sort"

	"github.com/Faultbox/fakebitmap/pkg/bitmap"
)

// Key prefixes for the identity keys of resources and files.
const (
	ResourcePrefix = "resource:"
	FilePrefix     = "file:"
)

// ResourceKey returns the identity key of a resolved resource name.
func ResourceKey(name string) string {
	return ResourcePrefix + name
}

// FileKey returns the identity key of a file path.
func FileKey(path string) string {
	return FilePrefix + path
}

// URIKey returns the identity key of a URI: its string form, unprefixed.
// A nil URI yields "".
func URIKey(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

// Registry maps identity keys to dimension hints.
//
// Sources without an identity never reach the registry, so every string,
// including "", is an ordinary key. The zero value is an empty registry.
//
// A Registry is not safe for concurrent use. Test cases sharing one must run
// serially and call Clear between them.
type Registry struct {
	data map[string]bitmap.Dimensions

	// Stats
	hits   int
	misses int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		data: make(map[string]bitmap.Dimensions),
	}
}

// Put stores a hint, overwriting any previous one.
func (r *Registry) Put(key string, d bitmap.Dimensions) {
	if r.data == nil {
		r.data = make(map[string]bitmap.Dimensions)
	}
	r.data[key] = d
}

// Get retrieves the hint for key.
func (r *Registry) Get(key string) (bitmap.Dimensions, bool) {
	d, ok := r.data[key]
	if ok {
		r.hits++
	} else {
		r.misses++
	}
	return d, ok
}

// Clear removes every hint and resets statistics.
func (r *Registry) Clear() {
	r.data = make(map[string]bitmap.Dimensions)
	r.hits = 0
	r.misses = 0
}

// Len returns the number of stored hints.
func (r *Registry) Len() int {
	return len(r.data)
}

// Keys returns the stored keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stats returns lookup statistics since the last Clear.
func (r *Registry) Stats() (hits, misses int) {
	return r.hits, r.misses
}
