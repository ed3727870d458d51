/*
Package pspace stores property values addressed by dot-separated compound
keys and provides scoped access to them through spaces.

We implement:

1. Addresses, dot-joined strings like “a.b.c” locating a single property.
The empty string is the root.

2. Property stores, ordered address-to-value mappings behind the
PropertyStore contract. The default SortedPropertyStore is an in-memory
map with a lazily rebuilt sorted key list; BoltPropertyStore keeps the
same contract on top of a Bolt bucket.

3. Spaces, lightweight (store, base address) values giving relative
access to a subtree. Many spaces can share one store; a space never
mutates anything on construction.

4. Tree operations, free functions for ordered depth-bounded traversal,
depth-bounded deletion, cross-space copy and bulk updates from pair
sequences, nested maps or YAML documents.

# Technical Details

**Ordering.**
Traversal yields properties in lexicographic order of their absolute
addresses, regardless of insertion order. SortedPropertyStore keeps a
sorted slice of populated addresses that goes stale on every write and
is rebuilt in full the next time ordering is needed. Deleted addresses
linger in the slice until that rebuild and are skipped because they are
absent from the primary map.

**Prefix scans.**
A scan binary-searches for the first address >= the base, then walks
forward while addresses are strict dotted-path descendants of the base.
The separator boundary matters: “a.b” must never match a stored “a.bc”.
The scan stops at the first address failing the descendant test, which
bounds a query to O(log n + k).

**Depth.**
Depth of an address below a base is the number of extra separators:
“a.b.c” is at depth 1 below “a.b” and depth 2 below “a”. The base
itself is at depth 0 and is only visited when the requested minimum
depth is 0.

**Values.**
Values are arbitrary and may be nil; a stored nil is distinct from an
absent address, which is why reads return a comma-ok pair.
*/
package pspace
