package registry

import (
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
)

// Registry is the stable, explicit interface catalogue for one
// endpoint-pair's negotiated protocol. It is an ordinary value — never a
// process-wide singleton (spec.md §9) — and is typically shared by
// reference between the two sides of a connection, or rebuilt identically
// on each side from the same generated stub package.
type Registry struct {
	mu        deadlock.RWMutex
	byOrdinal map[byte]*InterfaceDescriptor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byOrdinal: make(map[byte]*InterfaceDescriptor)}
}

// RegisterInterface adds desc to the registry. A duplicate ordinal is a
// configuration error, fatal at startup per spec.md §3/§7.
func (r *Registry) RegisterInterface(desc InterfaceDescriptor) error {
	if desc.Ordinal == 0 || desc.Ordinal > 127 {
		return errors.Errorf("registry: ordinal %d out of range 1..127", desc.Ordinal)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byOrdinal[desc.Ordinal]; exists {
		return errors.Wrapf(ErrDuplicateOrdinal, "ordinal %d (interface %s)", desc.Ordinal, desc.Name)
	}
	d := desc
	r.byOrdinal[desc.Ordinal] = &d
	return nil
}

// InterfaceByOrdinal returns the interface registered under ordinal.
func (r *Registry) InterfaceByOrdinal(ordinal byte) (*InterfaceDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byOrdinal[ordinal]
	return d, ok
}

// Method returns the method descriptor for (ordinal, index).
func (r *Registry) Method(ordinal byte, index byte) (*MethodDescriptor, bool) {
	d, ok := r.InterfaceByOrdinal(ordinal)
	if !ok {
		return nil, false
	}
	return d.MethodByIndex(index)
}
