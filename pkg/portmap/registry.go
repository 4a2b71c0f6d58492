package portmap

import "sync"

type mapKey struct {
	program  uint32
	version  uint32
	protocol uint32
}

// Registry is the portmapper's in-memory table of (program, version,
// protocol) -> port registrations. It is safe for concurrent use; the
// SET/UNSET/GETPORT/DUMP handlers each take the lock for the duration of a
// single lookup or mutation, never across a network round trip.
type Registry struct {
	mu       sync.Mutex
	mappings map[mapKey]uint32
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{mappings: make(map[mapKey]uint32)}
}

// Set registers m, overwriting any existing registration for the same
// (program, version, protocol). It always succeeds; SET only fails at the
// RPC layer (malformed arguments), never here.
func (r *Registry) Set(m Mapping) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappings[mapKey{m.Program, m.Version, m.Protocol}] = m.Port
	return true
}

// Unset removes the registration for (program, version, protocol) if
// present. It reports whether a registration was actually removed.
func (r *Registry) Unset(program, version, protocol uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := mapKey{program, version, protocol}
	if _, ok := r.mappings[key]; !ok {
		return false
	}
	delete(r.mappings, key)
	return true
}

// GetPort looks up the port registered for (program, version, protocol).
// Per RFC 1833 §4, a GETPORT miss is reported as port 0 with ok=false
// rather than an RPC error.
func (r *Registry) GetPort(program, version, protocol uint32) (port uint32, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	port, ok = r.mappings[mapKey{program, version, protocol}]
	return port, ok
}

// Dump returns every current registration. Order is unspecified, matching
// the usual portmapper contract (callers never rely on DUMP order).
func (r *Registry) Dump() []Mapping {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Mapping, 0, len(r.mappings))
	for key, port := range r.mappings {
		out = append(out, Mapping{Program: key.program, Version: key.version, Protocol: key.protocol, Port: port})
	}
	return out
}
