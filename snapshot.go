package pspace

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteSnapshot serializes the subtree of a space to w as a msgpack
// stream of relative address/value pairs. The space's own value, if any,
// is included at the empty address.
func WriteSnapshot(w io.Writer, sp Space) error {
	c, err := Walk(sp, WalkOptions{Relative: true})
	if err != nil {
		return err
	}
	pairs, err := c.Pairs()
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(len(pairs)); err != nil {
		return fmt.Errorf("pspace: write snapshot: %w", err)
	}
	for _, kv := range pairs {
		if err := enc.Encode(kv.Addr); err != nil {
			return fmt.Errorf("pspace: write snapshot: %w", err)
		}
		if err := enc.Encode(kv.Value); err != nil {
			return fmt.Errorf("pspace: write snapshot at %q: %w", kv.Addr, err)
		}
	}
	return nil
}

// ReadSnapshot reads a stream produced by WriteSnapshot and writes the
// pairs into sp at their relative addresses, overwriting existing values
// and leaving unrelated properties alone.
func ReadSnapshot(r io.Reader, sp Space) error {
	dec := msgpack.NewDecoder(r)
	var n int
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("pspace: read snapshot: %w", err)
	}
	pairs := make([]PropertyKV, 0, n)
	for i := 0; i < n; i++ {
		var addr string
		if err := dec.Decode(&addr); err != nil {
			return fmt.Errorf("pspace: read snapshot: %w", err)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("pspace: read snapshot at %q: %w", addr, err)
		}
		pairs = append(pairs, PropertyKV{addr, value})
	}
	return UpdateFromPairs(sp, pairs)
}
