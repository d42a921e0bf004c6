package design

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Load reads a design from its JSON file form (the format the editor stores).
// Elements without an ID are assigned one so downstream consumers can rely on
// stable identifiers.
func Load(path string) (*Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read design %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses a design from JSON bytes.
func Decode(data []byte) (*Design, error) {
	var d Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode design: %w", err)
	}
	d.EnsureIDs()
	return &d, nil
}

// Save writes the design as indented JSON.
func Save(d *Design, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode design: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write design %s: %w", path, err)
	}
	return nil
}

// EnsureIDs fills in a fresh UUID for every element missing one. Existing IDs
// are kept untouched.
func (d *Design) EnsureIDs() {
	for i := range d.Elements {
		if d.Elements[i].ID == "" {
			d.Elements[i].ID = uuid.NewString()
		}
	}
}
