package ident

import (
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// BinarySize is the length of the binary form of an Identifier.
const BinarySize = 8

// AppendBinary appends the packed word of id to dst in little-endian order.
func (id Identifier) AppendBinary(dst []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint64(dst, id.ToBits()), nil
}

func (id Identifier) MarshalBinary() ([]byte, error) {
	return id.AppendBinary(make([]byte, 0, BinarySize))
}

func (id *Identifier) UnmarshalBinary(b []byte) error {
	if len(b) != BinarySize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidLength, len(b), BinarySize)
	}
	*id = FromBits(binary.LittleEndian.Uint64(b))
	return nil
}

// MarshalCBOR encodes the packed word as a CBOR unsigned integer.
func (id Identifier) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(id.ToBits())
}

func (id *Identifier) UnmarshalCBOR(b []byte) error {
	var bits uint64
	if err := cbor.Unmarshal(b, &bits); err != nil {
		return fmt.Errorf("decode identifier cbor: %w", err)
	}
	*id = FromBits(bits)
	return nil
}
