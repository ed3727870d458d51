package pspace

import (
	"path/filepath"
	"reflect"
	"testing"
)

// runStoreContractTests exercises the PropertyStore semantics every
// backend must preserve: prefix matching, depth filtering and
// lexicographic ordering. String and nil values only, so that encoding
// backends round-trip them without type drift.
func runStoreContractTests(t *testing.T, open func(t *testing.T) PropertyStore) {
	seed := func(t *testing.T, pairs []PropertyKV) PropertyStore {
		t.Helper()
		s := open(t)
		if err := s.SetProperties("", pairs); err != nil {
			t.Fatalf("SetProperties failed: %v", err)
		}
		return s
	}
	drain := func(t *testing.T, c PropertyCursor) []PropertyKV {
		t.Helper()
		var pairs []PropertyKV
		for c.Next() {
			pairs = append(pairs, PropertyKV{c.Addr(), c.Value()})
		}
		if err := c.Err(); err != nil {
			t.Fatalf("cursor failed: %v", err)
		}
		return pairs
	}

	t.Run("ordering", func(t *testing.T) {
		s := seed(t, []PropertyKV{{"b", "2"}, {"a.x", "1"}, {"c", "3"}, {"a", "0"}})
		got := drain(t, s.GetProperties("", AllDepths()))
		want := []PropertyKV{{"a", "0"}, {"a.x", "1"}, {"b", "2"}, {"c", "3"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("scan = %v, wanted %v", got, want)
		}
	})

	t.Run("prefix boundary", func(t *testing.T) {
		s := seed(t, []PropertyKV{{"a.b", "1"}, {"a.bc", "2"}, {"a.b.z", "3"}})
		got := drain(t, s.GetProperties("a.b", AllDepths()))
		want := []PropertyKV{{"a.b", "1"}, {"a.b.z", "3"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("scan from a.b = %v, wanted %v", got, want)
		}
	})

	t.Run("depth band", func(t *testing.T) {
		s := seed(t, []PropertyKV{
			{"a.b", "1"}, {"a.c", "2"}, {"a.d.e", "3"}, {"a.d.f", "4"}, {"g", "5"},
		})
		got := drain(t, s.GetProperties("", DepthsBetween(1, 2)))
		want := []PropertyKV{{"a.b", "1"}, {"a.c", "2"}, {"a.d.e", "3"}, {"a.d.f", "4"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("depth band scan = %v, wanted %v", got, want)
		}
	})

	t.Run("equal address needs min depth zero", func(t *testing.T) {
		s := seed(t, []PropertyKV{{"a.b", "1"}, {"a.b.c", "2"}})
		got := drain(t, s.GetProperties("a.b", DepthsAtLeast(1)))
		want := []PropertyKV{{"a.b.c", "2"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("min depth 1 scan = %v, wanted %v", got, want)
		}
	})

	t.Run("nil value distinct from absent", func(t *testing.T) {
		s := seed(t, []PropertyKV{{"a", nil}})
		got := drain(t, s.GetProperties("a", SelfOnly()))
		if len(got) != 1 || got[0].Value != nil {
			t.Fatalf("stored nil scan = %v, wanted one nil-valued pair", got)
		}
		if got := drain(t, s.GetProperties("b", SelfOnly())); len(got) != 0 {
			t.Fatalf("absent address scan = %v, wanted nothing", got)
		}
	})

	t.Run("upsert", func(t *testing.T) {
		s := seed(t, []PropertyKV{{"a", "old"}})
		if err := s.SetProperties("", []PropertyKV{{"a", "new"}}); err != nil {
			t.Fatalf("SetProperties failed: %v", err)
		}
		got := drain(t, s.GetProperties("", AllDepths()))
		want := []PropertyKV{{"a", "new"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("after overwrite = %v, wanted %v", got, want)
		}
	})

	t.Run("delete with collector", func(t *testing.T) {
		s := seed(t, []PropertyKV{{"a.b", "1"}, {"a.c", "2"}, {"x", "3"}})
		var deleted []PropertyKV
		n, err := s.DeleteProperties("a", AllDepths(), &deleted)
		if err != nil {
			t.Fatalf("DeleteProperties failed: %v", err)
		}
		want := []PropertyKV{{"a.b", "1"}, {"a.c", "2"}}
		if n != 2 || !reflect.DeepEqual(deleted, want) {
			t.Fatalf("delete = (%d, %v), wanted (2, %v)", n, deleted, want)
		}
		got := drain(t, s.GetProperties("", AllDepths()))
		if !reflect.DeepEqual(got, []PropertyKV{{"x", "3"}}) {
			t.Fatalf("remaining = %v, wanted [{x 3}]", got)
		}
	})

	t.Run("full clear", func(t *testing.T) {
		s := seed(t, []PropertyKV{{"a", "1"}, {"b", "2"}, {"b.c", "3"}})
		n, err := s.DeleteProperties("", AllDepths(), nil)
		if err != nil {
			t.Fatalf("DeleteProperties failed: %v", err)
		}
		if n != 3 {
			t.Fatalf("clear count = %d, wanted 3", n)
		}
		if got := drain(t, s.GetProperties("", AllDepths())); len(got) != 0 {
			t.Fatalf("store not empty after clear: %v", got)
		}
		// The store stays usable after a clear.
		if err := s.SetProperties("", []PropertyKV{{"z", "9"}}); err != nil {
			t.Fatalf("SetProperties after clear failed: %v", err)
		}
		got := drain(t, s.GetProperties("", AllDepths()))
		if !reflect.DeepEqual(got, []PropertyKV{{"z", "9"}}) {
			t.Fatalf("after clear+set = %v, wanted [{z 9}]", got)
		}
	})

	t.Run("relative writes", func(t *testing.T) {
		s := open(t)
		if err := s.SetProperties("base", []PropertyKV{{"", "self"}, {"x.y", "deep"}}); err != nil {
			t.Fatalf("SetProperties failed: %v", err)
		}
		got := drain(t, s.GetProperties("", AllDepths()))
		want := []PropertyKV{{"base", "self"}, {"base.x.y", "deep"}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("relative writes = %v, wanted %v", got, want)
		}
	})
}

func TestSortedStoreContract(t *testing.T) {
	runStoreContractTests(t, func(t *testing.T) PropertyStore {
		return NewSortedPropertyStore()
	})
}

func TestBoltStoreContract(t *testing.T) {
	runStoreContractTests(t, func(t *testing.T) PropertyStore {
		s, err := OpenBoltPropertyStore(filepath.Join(t.TempDir(), "props.db"), nil)
		if err != nil {
			t.Fatalf("OpenBoltPropertyStore failed: %v", err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	})
}
