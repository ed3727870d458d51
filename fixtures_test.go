package pspace

import "testing"

var nestedFixture = map[string]any{
	"a": map[string]any{
		"b": 111,
		"c": 222,
		"d": map[string]any{
			"e": 333,
			"f": 444,
		},
	},
	"g": 555,
	"h": 666,
}

var flatFixture = map[string]any{
	"a.b":   111,
	"a.c":   222,
	"a.d.e": 333,
	"a.d.f": 444,
	"g":     555,
	"h":     666,
}

func pairMap(pairs []PropertyKV) map[string]any {
	m := make(map[string]any, len(pairs))
	for _, kv := range pairs {
		m[kv.Addr] = kv.Value
	}
	return m
}

// collectAll drains a full walk of sp into an address-to-value map.
func collectAll(t *testing.T, sp Space) map[string]any {
	t.Helper()
	c, err := Walk(sp, WalkOptions{})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	pairs, err := c.Pairs()
	if err != nil {
		t.Fatalf("walk cursor failed: %v", err)
	}
	return pairMap(pairs)
}

// collectAddrs drains a walk into the ordered address list.
func collectAddrs(t *testing.T, sp Space, opt WalkOptions) []string {
	t.Helper()
	c, err := Walk(sp, opt)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	var addrs []string
	for c.Next() {
		addrs = append(addrs, c.Addr())
	}
	if err := c.Err(); err != nil {
		t.Fatalf("walk cursor failed: %v", err)
	}
	return addrs
}

func mustUpdate(t *testing.T, sp Space, m any) {
	t.Helper()
	if err := UpdateFromMap(sp, m); err != nil {
		t.Fatalf("UpdateFromMap failed: %v", err)
	}
}
