package pspace

// WalkOptions restricts and shapes a Walk. The zero value walks everything
// at absolute addresses.
type WalkOptions struct {
	// Depths limits the traversal; the zero value covers all depths.
	Depths DepthRange
	// Filter, when set, is applied to each (absolute address, value) pair;
	// pairs it rejects are skipped.
	Filter func(addr string, value any) bool
	// Relative strips the space's base address (and its trailing
	// separator) from yielded addresses. The space's own property comes
	// out at the empty address.
	Relative bool
}

// Walk traverses the populated properties of a space in lexicographic
// order of absolute addresses. The depth range is validated before the
// store is consulted.
func Walk(sp Space, opt WalkOptions) (*WalkCursor, error) {
	if err := opt.Depths.Validate(); err != nil {
		return nil, err
	}
	strip := 0
	if opt.Relative {
		strip = len(sp.addr)
	}
	return &WalkCursor{
		inner:  sp.store.GetProperties(sp.addr, opt.Depths),
		filter: opt.Filter,
		strip:  strip,
	}, nil
}

// WalkCursor yields the pairs selected by a Walk.
type WalkCursor struct {
	inner  PropertyCursor
	filter func(addr string, value any) bool
	strip  int
	addr   string
	value  any
}

func (c *WalkCursor) Next() bool {
	for c.inner.Next() {
		addr, value := c.inner.Addr(), c.inner.Value()
		if c.filter != nil && !c.filter(addr, value) {
			continue
		}
		if c.strip > 0 {
			if len(addr) > c.strip {
				addr = addr[c.strip+1:]
			} else {
				addr = ""
			}
		}
		c.addr, c.value = addr, value
		return true
	}
	return false
}

func (c *WalkCursor) Addr() string { return c.addr }
func (c *WalkCursor) Value() any   { return c.value }
func (c *WalkCursor) Err() error   { return c.inner.Err() }

// Pairs drains the cursor into a slice.
func (c *WalkCursor) Pairs() ([]PropertyKV, error) {
	var pairs []PropertyKV
	for c.Next() {
		pairs = append(pairs, PropertyKV{c.addr, c.value})
	}
	return pairs, c.Err()
}

// Delete removes properties of a space within a depth range and returns
// how many were removed. If deleted is non-nil, removed pairs are appended
// to it. An invalid depth range fails before anything is mutated.
func Delete(sp Space, depths DepthRange, deleted *[]PropertyKV) (int, error) {
	if err := depths.Validate(); err != nil {
		return 0, err
	}
	return sp.store.DeleteProperties(sp.addr, depths, deleted)
}

// SetValue sets the property value at the base address of a space.
func SetValue(sp Space, value any) error {
	return sp.store.SetProperties(sp.addr, []PropertyKV{{"", value}})
}

// CopyFromSpace copies every property of the source space into the target
// space using relative addressing: a property at source.Addr()+X ends up
// at target.Addr()+X for every populated suffix X, including the empty
// suffix for the source's own value. The two spaces may share a store or
// use different stores of different concrete types.
func CopyFromSpace(target, source Space) error {
	c, err := Walk(source, WalkOptions{Relative: true})
	if err != nil {
		return err
	}
	pairs, err := c.Pairs()
	if err != nil {
		return err
	}
	return target.store.SetProperties(target.addr, pairs)
}

// UpdateFromPairs bulk-writes relative address/value pairs into a space.
func UpdateFromPairs(sp Space, pairs []PropertyKV) error {
	return sp.store.SetProperties(sp.addr, pairs)
}

// UpdateFromMap bulk-writes a flat or nested map into a space, joining
// nested keys with '.' as by FlattenMap.
func UpdateFromMap(sp Space, m any) error {
	return UpdateFromPairs(sp, FlattenMap(m))
}
