package pspace

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UpdateFromYAML parses a YAML document of nested mappings and writes the
// flattened result into a space, the way a configuration file is loaded.
func UpdateFromYAML(sp Space, data []byte) error {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("pspace: parse yaml: %w", err)
	}
	return UpdateFromMap(sp, m)
}

// MarshalYAML renders the subtree of a space as a YAML mapping of flat
// relative addresses to values. Feeding the output back through
// UpdateFromYAML reproduces the same properties, because FlattenMap
// treats a dotted key as a single compound part.
func MarshalYAML(sp Space) ([]byte, error) {
	c, err := Walk(sp, WalkOptions{Relative: true})
	if err != nil {
		return nil, err
	}
	flat := make(map[string]any)
	for c.Next() {
		flat[c.Addr()] = c.Value()
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	return yaml.Marshal(flat)
}
