// ABOUTME: Serialization of a collection to its storage slot
// ABOUTME: JSON array encoding by default, pluggable per record type

package collection

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Codec converts a whole collection to and from its stored form.
type Codec[T any] interface {
	Encode(items []T) ([]byte, error)
	Decode(data []byte) ([]T, error)
}

// JSONCodec stores the collection as a JSON array of records.
type JSONCodec[T any] struct{}

// Encode marshals items. A nil slice encodes as an empty array.
func (JSONCodec[T]) Encode(items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return data, nil
}

// Decode unmarshals a JSON array. JSON null decodes as empty.
func (JSONCodec[T]) Decode(data []byte) ([]T, error) {
	items, err := DecodeElements[T](data)
	if err != nil {
		return items, fmt.Errorf("decode collection: %w", err)
	}
	return items, nil
}

// DecodeElements unmarshals a JSON array one element at a time. Elements that
// do not decode are skipped and reported in the error alongside the rest.
// Data that is not an array returns nil items.
func DecodeElements[T any](data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	items := make([]T, 0, len(raw))
	var errs []error
	for i, elem := range raw {
		if string(elem) == "null" {
			continue
		}
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
			continue
		}
		items = append(items, item)
	}
	return items, errors.Join(errs...)
}
