package ident

import "cmp"

// Identifier is a 64-bit packed id made of a 32-bit low segment and a 32-bit
// high segment whose two top bits are flags (see mask.go).
//
// Identifiers are values: every method returns a new Identifier and none
// mutates the receiver. The zero Identifier is the active entity 0v0.
type Identifier struct {
	low  uint32
	high uint32
}

// New builds an identifier. Bits of high that overlap the reserved flags
// are discarded, so the result is always active and carries kind.
func New(low, high uint32, kind Kind) Identifier {
	return Identifier{
		low:  low,
		high: PackKindIntoHigh(ValueFromHigh(high), kind),
	}
}

// FromBits reinterprets a packed word as an identifier. Every bit pattern
// is accepted and preserved.
func FromBits(bits uint64) Identifier {
	return Identifier{
		low:  LowFromBits(bits),
		high: HighFromBits(bits),
	}
}

// ToBits returns the packed word.
func (id Identifier) ToBits() uint64 {
	return PackBits(id.low, id.high)
}

// Low returns the low segment.
func (id Identifier) Low() uint32 {
	return id.low
}

// High returns the high segment with its flag bits still set.
// Use Value for the caller value alone.
func (id Identifier) High() uint32 {
	return id.high
}

// Value returns the high segment with the flag bits cleared.
func (id Identifier) Value() uint32 {
	return ValueFromHigh(id.high)
}

func (id Identifier) Kind() Kind {
	return KindFromHigh(id.high)
}

func (id Identifier) IsActive() bool {
	return ActiveFromHigh(id.high)
}

// Activate returns id with the inactive flag cleared.
func (id Identifier) Activate() Identifier {
	id.high = PackActiveIntoHigh(id.high, true)
	return id
}

// Deactivate returns id with the inactive flag set.
func (id Identifier) Deactivate() Identifier {
	id.high = PackActiveIntoHigh(id.high, false)
	return id
}

// Compare orders identifiers by their packed words as unsigned integers.
func (id Identifier) Compare(other Identifier) int {
	return cmp.Compare(id.ToBits(), other.ToBits())
}

func (id Identifier) Less(other Identifier) bool {
	return id.ToBits() < other.ToBits()
}
