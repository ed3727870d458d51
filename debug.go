package pspace

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the properties of a space to w as sorted "addr = value"
// lines between begin/end markers naming the base address. Intended for
// debugging, not for machine parsing; use snapshots for that.
func Dump(w io.Writer, sp Space) error {
	c, err := Walk(sp, WalkOptions{})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "::: begin space dump from base address %q :::\n", sp.addr); err != nil {
		return err
	}
	for c.Next() {
		if _, err := fmt.Fprintf(w, "%s = %v\n", c.Addr(), c.Value()); err != nil {
			return err
		}
	}
	if err := c.Err(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "::: end space dump from base address %q :::\n", sp.addr)
	return err
}

// DumpString returns the Dump output as a string.
func DumpString(sp Space) string {
	var b strings.Builder
	ensure(Dump(&b, sp))
	return b.String()
}
