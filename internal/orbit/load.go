package orbit

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTable decodes a YAML orbit table and validates it.
// Unknown keys are rejected so typos do not silently fall back to zero.
func LoadTable(r io.Reader) (Table, error) {
	var t Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Table{}, fmt.Errorf("decode orbit table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, fmt.Errorf("invalid orbit table: %w", err)
	}
	return t, nil
}

// LoadTableFile reads a YAML orbit table from path.
func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open orbit table: %w", err)
	}
	defer f.Close()
	return LoadTable(f)
}
