package pspace

import "sort"

// SortedPropertyStore is the default in-memory PropertyStore: a plain map
// plus a sorted address slice rebuilt on demand for ordered iteration.
//
// Not safe for concurrent use; callers needing that must add their own
// synchronization around the store.
type SortedPropertyStore struct {
	props map[string]any
	// sorted goes stale on every mutation and is rebuilt in full the next
	// time ordering is needed. Deleted addresses stay in it until then and
	// are skipped because they are absent from props.
	sorted []string
	dirty  bool
}

func NewSortedPropertyStore() *SortedPropertyStore {
	return &SortedPropertyStore{props: make(map[string]any)}
}

func (s *SortedPropertyStore) SetProperties(base string, pairs []PropertyKV) error {
	for _, kv := range pairs {
		s.props[BuildAddress(base, kv.Addr)] = kv.Value
	}
	s.dirty = true
	return nil
}

func (s *SortedPropertyStore) GetProperties(base string, depths DepthRange) PropertyCursor {
	return &memPropCursor{
		store:  s,
		base:   base,
		depths: depths,
		rest:   s.populatedTail(base),
	}
}

func (s *SortedPropertyStore) DeleteProperties(base string, depths DepthRange, deleted *[]PropertyKV) (int, error) {
	if base == "" && depths.unbounded() && deleted == nil {
		n := len(s.props)
		s.props = make(map[string]any)
		s.sorted = nil
		s.dirty = false
		return n, nil
	}

	// Collect first, mutate after; the cursor must not observe its own
	// deletions.
	var doomed []string
	c := s.GetProperties(base, depths)
	for c.Next() {
		if deleted != nil {
			*deleted = append(*deleted, PropertyKV{c.Addr(), c.Value()})
		}
		doomed = append(doomed, c.Addr())
	}
	for _, addr := range doomed {
		delete(s.props, addr)
	}
	if len(doomed) > 0 {
		s.dirty = true
	}
	return len(doomed), nil
}

// Len returns the number of populated addresses.
func (s *SortedPropertyStore) Len() int { return len(s.props) }

// populatedTail rebuilds the sort order if stale and returns the slice of
// sorted addresses starting at the lower bound for base.
func (s *SortedPropertyStore) populatedTail(base string) []string {
	if s.dirty || s.sorted == nil {
		s.rebuild()
	}
	pos := sort.SearchStrings(s.sorted, base)
	return s.sorted[pos:]
}

func (s *SortedPropertyStore) rebuild() {
	s.sorted = make([]string, 0, len(s.props))
	for addr := range s.props {
		s.sorted = append(s.sorted, addr)
	}
	sort.Strings(s.sorted)
	s.dirty = false
}

type memPropCursor struct {
	store  *SortedPropertyStore
	base   string
	depths DepthRange
	rest   []string
	addr   string
	value  any
}

func (c *memPropCursor) Next() bool {
	for len(c.rest) > 0 {
		addr := c.rest[0]
		c.rest = c.rest[1:]
		value, ok := c.store.props[addr]
		if !ok {
			// Tombstoned by absence; gone from the map, still in the slice.
			continue
		}
		hit, stop := matchAddr(c.base, addr, c.depths)
		if stop {
			break
		}
		if !hit {
			continue
		}
		c.addr, c.value = addr, value
		return true
	}
	c.rest = nil
	return false
}

func (c *memPropCursor) Addr() string { return c.addr }
func (c *memPropCursor) Value() any   { return c.value }
func (c *memPropCursor) Err() error   { return nil }
