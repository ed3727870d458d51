package pspace

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"
)

var boltPropsBucket = []byte("props")

// BoltPropertyStore is a PropertyStore on top of a Bolt bucket. Addresses
// are the bucket keys, so Bolt's bytewise key order is exactly the
// lexicographic address order the contract requires; values are msgpack,
// which keeps a stored nil distinct from an absent key.
//
// The default store for a space is the in-memory SortedPropertyStore;
// this backend exists for callers that want the same space API over a
// file, and as proof that the contract carries all of the semantics.
type BoltPropertyStore struct {
	db *bbolt.DB
}

// OpenBoltPropertyStore opens (creating if needed) a Bolt database at path
// and returns a property store backed by it. Pass nil opts for defaults.
func OpenBoltPropertyStore(path string, opts *bbolt.Options) (*BoltPropertyStore, error) {
	db, err := bbolt.Open(path, 0o600, opts)
	if err != nil {
		return nil, fmt.Errorf("pspace: open bolt store: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltPropsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("pspace: open bolt store: %w", err)
	}
	return &BoltPropertyStore{db: db}, nil
}

// Close closes the underlying Bolt database.
func (s *BoltPropertyStore) Close() error {
	return s.db.Close()
}

func (s *BoltPropertyStore) SetProperties(base string, pairs []PropertyKV) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltPropsBucket)
		for _, kv := range pairs {
			addr := BuildAddress(base, kv.Addr)
			data, err := msgpack.Marshal(kv.Value)
			if err != nil {
				return fmt.Errorf("pspace: encode value at %q: %w", addr, err)
			}
			if err := b.Put([]byte(addr), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltPropertyStore) GetProperties(base string, depths DepthRange) PropertyCursor {
	// Bolt cursors die with their transaction, so matching pairs are
	// materialized here rather than streamed to the caller.
	pairs, err := s.scan(base, depths, true)
	return &slicePropCursor{rest: pairs, err: err}
}

func (s *BoltPropertyStore) DeleteProperties(base string, depths DepthRange, deleted *[]PropertyKV) (int, error) {
	if base == "" && depths.unbounded() && deleted == nil {
		var n int
		err := s.db.Update(func(tx *bbolt.Tx) error {
			n = tx.Bucket(boltPropsBucket).Stats().KeyN
			if err := tx.DeleteBucket(boltPropsBucket); err != nil {
				return err
			}
			_, err := tx.CreateBucket(boltPropsBucket)
			return err
		})
		if err != nil {
			return 0, err
		}
		return n, nil
	}

	pairs, err := s.scan(base, depths, deleted != nil)
	if err != nil {
		return 0, err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(boltPropsBucket)
		for _, kv := range pairs {
			if err := b.Delete([]byte(kv.Addr)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if deleted != nil {
		*deleted = append(*deleted, pairs...)
	}
	return len(pairs), nil
}

// scan runs the prefix scan inside a read transaction: seek to the lower
// bound for base, then walk forward under the same descendant/boundary
// rule as the in-memory store. Values are only decoded when wanted.
func (s *BoltPropertyStore) scan(base string, depths DepthRange, decode bool) ([]PropertyKV, error) {
	var pairs []PropertyKV
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(boltPropsBucket).Cursor()
		for k, v := c.Seek([]byte(base)); k != nil; k, v = c.Next() {
			addr := string(k)
			hit, stop := matchAddr(base, addr, depths)
			if stop {
				break
			}
			if !hit {
				continue
			}
			var value any
			if decode {
				if err := msgpack.Unmarshal(v, &value); err != nil {
					return fmt.Errorf("pspace: decode value at %q: %w", addr, err)
				}
			}
			pairs = append(pairs, PropertyKV{addr, value})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

type slicePropCursor struct {
	rest []PropertyKV
	cur  PropertyKV
	err  error
}

func (c *slicePropCursor) Next() bool {
	if c.err != nil || len(c.rest) == 0 {
		return false
	}
	c.cur = c.rest[0]
	c.rest = c.rest[1:]
	return true
}

func (c *slicePropCursor) Addr() string { return c.cur.Addr }
func (c *slicePropCursor) Value() any   { return c.cur.Value }
func (c *slicePropCursor) Err() error   { return c.err }
