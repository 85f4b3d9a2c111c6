package ident

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/minio/simdjson-go"
)

// ParseJSONList parses a JSON array of identifiers. Elements are either
// strings in text form or non-negative integers holding packed words.
// simdjson-go is used when the CPU supports it, encoding/json otherwise.
func ParseJSONList(data []byte) ([]Identifier, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: input is empty", ErrInvalidJSON)
	}
	if trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: root must be an array", ErrInvalidJSON)
	}
	if !simdjson.SupportedCPU() {
		return parseJSONListStd(trimmed)
	}

	parsed, err := simdjson.Parse(trimmed, getParsedJSON())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	defer putParsedJSON(parsed)

	it := parsed.Iter()
	if it.Advance() != simdjson.TypeRoot {
		return nil, fmt.Errorf("%w: root not found", ErrInvalidJSON)
	}
	typ, root, err := it.Root(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if typ != simdjson.TypeArray {
		return nil, fmt.Errorf("%w: root must be an array", ErrInvalidJSON)
	}
	arr, err := root.Array(nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	ids := make([]Identifier, 0, 16)
	elems := arr.Iter()
	for i := 0; ; i++ {
		t := elems.Advance()
		if t == simdjson.TypeNone {
			break
		}
		id, err := identifierFromJSONIter(t, &elems)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrInvalidJSON, i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func identifierFromJSONIter(typ simdjson.Type, it *simdjson.Iter) (Identifier, error) {
	switch typ {
	case simdjson.TypeUint:
		v, err := it.Uint()
		if err != nil {
			return Identifier{}, err
		}
		return FromBits(v), nil
	case simdjson.TypeInt:
		v, err := it.Int()
		if err != nil {
			return Identifier{}, err
		}
		if v < 0 {
			return Identifier{}, fmt.Errorf("negative packed word %d", v)
		}
		return FromBits(uint64(v)), nil
	case simdjson.TypeString:
		b, err := it.StringBytes()
		if err != nil {
			return Identifier{}, err
		}
		return ParseIdentifier(string(b))
	default:
		return Identifier{}, fmt.Errorf("unsupported json type: %v", typ)
	}
}

func parseJSONListStd(data []byte) ([]Identifier, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	ids := make([]Identifier, len(raw))
	for i, elem := range raw {
		if string(bytes.TrimSpace(elem)) == "null" {
			return nil, fmt.Errorf("%w: element %d: unsupported json type: null", ErrInvalidJSON, i)
		}
		if err := ids[i].UnmarshalJSON(elem); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", ErrInvalidJSON, i, err)
		}
	}
	return ids, nil
}
