package encoding

import (
	"encoding/json"
	"fmt"
)

// Serializable provides a clean, simple interface for serializing and
// deserializing values.
type Serializable interface {
	Serialize() ([]byte, error)
	Deserialize([]byte) error
}

// ToMap normalizes a value into its JSON field map. Structs are flattened
// through their JSON tags; maps pass through a round-trip so nested values
// take their JSON-normalized form.
func ToMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var out map[string]any
	if err = json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// FromMap decodes a JSON field map back into a typed destination.
func FromMap(data map[string]any, dst any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
