package realtime

import "sync"

// Registry maps a key (a login or a call room id) to the set of live
// connections registered under it. It holds non-owning references: removing a
// connection never closes it.
//
// A key is present only while its set is non-empty.
type Registry struct {
	mu   sync.RWMutex
	sets map[string]map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		sets: make(map[string]map[Conn]struct{}),
	}
}

// Register adds conn under key and reports whether it is the first connection
// of that key. Registering the same connection twice is a no-op.
func (r *Registry) Register(key string, conn Conn) (first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[key]
	if !ok {
		set = make(map[Conn]struct{})
		r.sets[key] = set
	}
	set[conn] = struct{}{}
	return !ok
}

// Unregister removes conn from key. It reports whether conn was present and
// whether key is now gone. Absent keys and connections are ignored.
func (r *Registry) Unregister(key string, conn Conn) (removed, last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.sets[key]
	if !ok {
		return false, false
	}
	if _, ok := set[conn]; !ok {
		return false, false
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(r.sets, key)
		return true, true
	}
	return true, false
}

// Lookup returns a copy of the connections registered under key, so callers
// may unregister while iterating.
func (r *Registry) Lookup(key string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	set, ok := r.sets[key]
	if !ok {
		return nil
	}
	conns := make([]Conn, 0, len(set))
	for conn := range set {
		conns = append(conns, conn)
	}
	return conns
}

// Len returns the number of keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}

// Count returns the number of registered connections across all keys.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, set := range r.sets {
		n += len(set)
	}
	return n
}

// keys returns the registered keys in no particular order.
func (r *Registry) keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.sets))
	for key := range r.sets {
		keys = append(keys, key)
	}
	return keys
}
