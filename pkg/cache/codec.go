package cache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes v for storage with msgpack.
func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode cache entry: %w", err)
	}
	return data, nil
}

// Decode deserializes data produced by [Encode] into v.
func Decode(data []byte, v any) error {
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode cache entry: %w", err)
	}
	return nil
}
