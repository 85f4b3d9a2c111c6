package ident

// Layout of a packed identifier word:
//
//	bit 63 ........ bit 32 | bit 31 ........ bit 0
//	        high           |         low
//
// Within high, bit 31 is the kind flag, bit 30 the inactive flag and
// bits 29..0 the caller value.
const (
	lowMask uint64 = 0xFFFF_FFFF

	// KindBit is set for pair identifiers.
	KindBit uint32 = 1 << 31
	// InactiveBit is set for deactivated identifiers.
	InactiveBit uint32 = 1 << 30
	// FlagMask covers every reserved bit of the high segment.
	FlagMask = KindBit | InactiveBit
	// ValueMask covers the caller value of the high segment.
	ValueMask = ^FlagMask

	ValueBits = 30
	MaxValue  = ValueMask
)

// LowFromBits returns the least significant 32 bits of word.
func LowFromBits(word uint64) uint32 {
	return uint32(word & lowMask)
}

// HighFromBits returns the most significant 32 bits of word, flags included.
func HighFromBits(word uint64) uint32 {
	return uint32((word &^ lowMask) >> 32)
}

// PackBits joins low and high into one word. It is the inverse of
// LowFromBits and HighFromBits.
func PackBits(low, high uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}

// ValueFromHigh clears the reserved flag bits of high.
func ValueFromHigh(high uint32) uint32 {
	return high & ValueMask
}

// KindFromHigh reports the kind encoded in high. Only KindBit is examined.
func KindFromHigh(high uint32) Kind {
	if high&KindBit == KindBit {
		return KindPair
	}
	return KindEntity
}

// PackKindIntoHigh sets or clears KindBit in high, leaving every other bit
// untouched.
func PackKindIntoHigh(high uint32, kind Kind) uint32 {
	if uint32(kind)&KindBit != 0 {
		return high | KindBit
	}
	return high &^ KindBit
}

// ActiveFromHigh reports whether InactiveBit is clear in high.
func ActiveFromHigh(high uint32) bool {
	return high&InactiveBit == 0
}

// PackActiveIntoHigh clears InactiveBit when active is true and sets it
// otherwise, leaving every other bit untouched.
func PackActiveIntoHigh(high uint32, active bool) uint32 {
	if active {
		return high &^ InactiveBit
	}
	return high | InactiveBit
}
