package status

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Registry holds the card's named counters and flags
// Components fetch their pointers once at construction and write the atomics directly
type Registry struct {
	mu       sync.Mutex
	counters map[string]*atomic.Int64
	flags    map[string]*atomic.Bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]*atomic.Int64),
		flags:    make(map[string]*atomic.Bool),
	}
}

// Counter returns the counter for key, or a detached counter when r is nil
func (r *Registry) Counter(key string) *atomic.Int64 {
	if r == nil {
		return new(atomic.Int64)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lookup(r.counters, key)
}

// Flag returns the flag for key, or a detached flag when r is nil
func (r *Registry) Flag(key string) *atomic.Bool {
	if r == nil {
		return new(atomic.Bool)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return lookup(r.flags, key)
}

func lookup[T any](m map[string]*T, key string) *T {
	ptr, ok := m[key]
	if !ok {
		ptr = new(T)
		m[key] = ptr
	}
	return ptr
}

// Len returns the number of registered counters and flags
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.counters) + len(r.flags)
}

// Summary renders "key=value" pairs in key order, counters before flags
func (r *Registry) Summary() string {
	if r == nil {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	parts := make([]string, 0, len(r.counters)+len(r.flags))
	for _, k := range slices.Sorted(maps.Keys(r.counters)) {
		parts = append(parts, k+"="+strconv.FormatInt(r.counters[k].Load(), 10))
	}
	for _, k := range slices.Sorted(maps.Keys(r.flags)) {
		parts = append(parts, k+"="+strconv.FormatBool(r.flags[k].Load()))
	}
	return strings.Join(parts, " ")
}

// KeyValues flattens the counters into key/value pairs for the exit log
func (r *Registry) KeyValues() []any {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kv := make([]any, 0, len(r.counters)*2)
	for _, k := range slices.Sorted(maps.Keys(r.counters)) {
		kv = append(kv, k, r.counters[k].Load())
	}
	return kv
}
