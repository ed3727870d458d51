package pspace

import (
	"fmt"
	"iter"
	"strings"
)

// Space is a viewport into all or part of a property store: a shared store
// reference plus a base address. Addresses given to a space are relative
// and get appended to the base. Spaces are cheap values with no lifecycle
// of their own; two spaces with equal (store, address) pairs are
// interchangeable, and constructing one never touches the store.
type Space struct {
	store PropertyStore
	addr  string
}

// New creates a fresh SortedPropertyStore and returns its root space.
func New() Space {
	return Space{store: NewSortedPropertyStore()}
}

// NewSpace returns the root space of the given store. Panics on a nil
// store; a broken store wiring should fail at construction, not at the
// first query.
func NewSpace(store PropertyStore) Space {
	if store == nil {
		panic("pspace: nil PropertyStore")
	}
	return Space{store: store}
}

// Descend returns the sub-space of sp at the given relative address part.
// Pure; the store is not consulted and no addresses spring into existence.
func Descend(sp Space, part any) Space {
	return Space{sp.store, BuildAddress(sp.addr, part)}
}

// At descends through one or more relative address parts. Parts may be
// compound ("c.d"), so sp.At("c", "d"), sp.At("c.d") and sp.At("c").At("d")
// all land on the same sub-space.
func (sp Space) At(parts ...any) Space {
	for _, part := range parts {
		sp = Descend(sp, part)
	}
	return sp
}

// Addr returns the space's base address; empty for a root space.
func (sp Space) Addr() string { return sp.addr }

// Store returns the backing store shared by this space.
func (sp Space) Store() PropertyStore { return sp.store }

// Get returns the value stored at the space's own address. The second
// result distinguishes an absent property from a stored nil.
//
// Store I/O failures escape as panics here; use Walk with SelfOnly for an
// error-returning read.
func (sp Space) Get() (any, bool) {
	c := sp.store.GetProperties(sp.addr, SelfOnly())
	if c.Next() && c.Addr() == sp.addr {
		// The address check matters at the root, where dot-free addresses
		// share depth 0 with the root itself.
		return c.Value(), true
	}
	ensure(c.Err())
	return nil, false
}

// Set writes a value at the space's own address. If value is itself a
// Space, its whole subtree is copied here instead, as by CopyFromSpace.
func (sp Space) Set(value any) error {
	if src, ok := value.(Space); ok {
		return CopyFromSpace(sp, src)
	}
	return SetValue(sp, value)
}

// Unset deletes the property at the space's own address and nothing else.
// Descendant properties stay in the store and remain visible to walks
// over any ancestor, even though this space now reads as absent. At the
// root, depth 0 also covers dot-free top-level addresses, so those go too.
func (sp Space) Unset() error {
	_, err := sp.store.DeleteProperties(sp.addr, SelfOnly(), nil)
	return err
}

// All yields every populated (address, value) pair at or below the space,
// in absolute-address order. Store I/O failures escape as panics; use Walk
// for an error-returning traversal.
func (sp Space) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		c := sp.store.GetProperties(sp.addr, AllDepths())
		for c.Next() {
			if !yield(c.Addr(), c.Value()) {
				return
			}
		}
		ensure(c.Err())
	}
}

// String formats the space's properties as a human-readable listing.
func (sp Space) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Space[%s]:", sp.addr)
	for addr, value := range sp.All() {
		fmt.Fprintf(&b, "\n  %s = %v", addr, value)
	}
	return b.String()
}
