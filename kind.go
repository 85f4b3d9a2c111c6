package ident

import "fmt"

// Kind is the tag stored in the most significant bit of the high segment.
// Its numeric value is the bit itself, so a Kind can be ORed into a high word.
type Kind uint32

const (
	KindEntity Kind = 0
	KindPair   Kind = Kind(KindBit)
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k&Kind(KindBit) != 0 {
		return "pair"
	}
	return "entity"
}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "entity":
		return KindEntity, nil
	case "pair":
		return KindPair, nil
	default:
		return KindEntity, fmt.Errorf("unknown kind %q", s)
	}
}
