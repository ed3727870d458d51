package pspace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDepthRange is wrapped by errors returned for depth ranges with
// a negative minimum or a maximum below the minimum.
var ErrInvalidDepthRange = errors.New("invalid depth range")

// PropertyKV is a single address/value pair. Addr is relative or absolute
// depending on context; Value may legitimately be nil.
type PropertyKV struct {
	Addr  string
	Value any
}

// DepthRange restricts an operation to addresses within a band of depths
// below a base address. The zero value covers all depths, like an open
// range. Use the constructors; a maximum can only be imposed through them.
type DepthRange struct {
	min    int
	max    int
	maxSet bool
}

func AllDepths() DepthRange            { return DepthRange{} }
func SelfOnly() DepthRange             { return DepthRange{maxSet: true} }
func DepthsAtLeast(min int) DepthRange { return DepthRange{min: min} }

func DepthsBetween(min, max int) DepthRange {
	return DepthRange{min: min, max: max, maxSet: true}
}

func DepthExactly(depth int) DepthRange {
	return DepthRange{min: depth, max: depth, maxSet: true}
}

// MinDepth returns the lower bound of the range.
func (r DepthRange) MinDepth() int { return r.min }

// MaxDepth returns the upper bound and whether one is imposed.
func (r DepthRange) MaxDepth() (int, bool) { return r.max, r.maxSet }

// Contains reports whether a depth falls within the range.
func (r DepthRange) Contains(depth int) bool {
	return depth >= r.min && (!r.maxSet || depth <= r.max)
}

// Validate checks the range before any operation touches a store.
func (r DepthRange) Validate() error {
	if r.min < 0 {
		return fmt.Errorf("%w: min depth (%d) must not be negative", ErrInvalidDepthRange, r.min)
	}
	if r.maxSet && r.max < r.min {
		return fmt.Errorf("%w: max depth (%d) must not be less than min depth (%d)", ErrInvalidDepthRange, r.max, r.min)
	}
	return nil
}

// unbounded reports whether the range covers everything from the root down.
func (r DepthRange) unbounded() bool {
	return r.min == 0 && !r.maxSet
}

// PropertyStore is the contract between spaces and a backing store.
// Implementations own the full address-to-value mapping and whatever
// derived ordering state they need. Bulk operations are preferred so
// implementations can optimize them.
//
// Implementations may assume depth ranges have been validated; Walk and
// Delete do that before delegating.
type PropertyStore interface {
	// SetProperties stores each pair at BuildAddress(base, pair.Addr),
	// overwriting any previous value (upsert semantics).
	SetProperties(base string, pairs []PropertyKV) error

	// GetProperties returns a cursor over every populated address that
	// equals base (only at min depth 0) or is a strict dotted-path
	// descendant of base within the depth range, in lexicographic order
	// of absolute addresses. An empty base matches the whole store.
	GetProperties(base string, depths DepthRange) PropertyCursor

	// DeleteProperties removes entries under the same prefix/depth rule
	// as GetProperties and returns how many were removed. If deleted is
	// non-nil, each removed pair is appended to it first. An unconstrained
	// delete of the whole store with no collector is an O(1) clear.
	DeleteProperties(base string, depths DepthRange, deleted *[]PropertyKV) (int, error)
}

// PropertyCursor iterates over address/value pairs in address order.
// Next must be called before the first Addr/Value access; after Next
// returns false, check Err for a store failure that cut the scan short.
type PropertyCursor interface {
	Next() bool
	Addr() string
	Value() any
	Err() error
}

// matchAddr classifies a candidate address during a forward scan from the
// lower bound of base. hit means the address is within the space and depth
// range; stop means the scan has left the subtree and must not continue,
// which keeps prefix queries at O(log n + k).
//
// The separator boundary check is what keeps "a.b" from matching a stored
// "a.bc" despite the literal string prefix.
func matchAddr(base, addr string, depths DepthRange) (hit, stop bool) {
	if !strings.HasPrefix(addr, base) {
		return false, true
	}
	if len(addr) == len(base) {
		return depths.min == 0, false
	}
	if base != "" && addr[len(base)] != '.' {
		return false, true
	}
	return depths.Contains(addrDepth(base, addr)), false
}
