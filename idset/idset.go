// Package idset provides a compressed set of identifiers backed by a 64-bit
// roaring bitmap keyed by the packed word. Iteration follows identifier
// order (ascending packed words).
//
// A Set is not safe for concurrent mutation.
package idset

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	ident "github.com/starfederation/ident-go"
)

// Set is a set of identifiers. The zero Set is an empty set ready to use.
type Set struct {
	rb *roaring64.Bitmap
}

func (s *Set) bitmap() *roaring64.Bitmap {
	if s.rb == nil {
		s.rb = roaring64.New()
	}
	return s.rb
}

// New creates a set holding ids.
func New(ids ...ident.Identifier) *Set {
	s := &Set{rb: roaring64.New()}
	for _, id := range ids {
		s.rb.Add(id.ToBits())
	}
	return s
}

// Add inserts id. It reports whether id was not already present.
func (s *Set) Add(id ident.Identifier) bool {
	return s.bitmap().CheckedAdd(id.ToBits())
}

// Remove deletes id. It reports whether id was present.
func (s *Set) Remove(id ident.Identifier) bool {
	return s.bitmap().CheckedRemove(id.ToBits())
}

func (s *Set) Contains(id ident.Identifier) bool {
	return s.bitmap().Contains(id.ToBits())
}

func (s *Set) Len() uint64 {
	return s.bitmap().GetCardinality()
}

func (s *Set) IsEmpty() bool {
	return s.bitmap().IsEmpty()
}

// All yields the identifiers in ascending order.
func (s *Set) All() iter.Seq[ident.Identifier] {
	return func(yield func(ident.Identifier) bool) {
		it := s.bitmap().Iterator()
		for it.HasNext() {
			if !yield(ident.FromBits(it.Next())) {
				return
			}
		}
	}
}

// Slice returns the identifiers in ascending order.
func (s *Set) Slice() []ident.Identifier {
	bits := s.bitmap().ToArray()
	out := make([]ident.Identifier, len(bits))
	for i, b := range bits {
		out[i] = ident.FromBits(b)
	}
	return out
}

// Min returns the smallest identifier. ok is false for an empty set.
func (s *Set) Min() (id ident.Identifier, ok bool) {
	rb := s.bitmap()
	if rb.IsEmpty() {
		return ident.Identifier{}, false
	}
	return ident.FromBits(rb.Minimum()), true
}

// Max returns the largest identifier. ok is false for an empty set.
func (s *Set) Max() (id ident.Identifier, ok bool) {
	rb := s.bitmap()
	if rb.IsEmpty() {
		return ident.Identifier{}, false
	}
	return ident.FromBits(rb.Maximum()), true
}

// CountKind returns how many members carry kind.
func (s *Set) CountKind(kind ident.Kind) uint64 {
	var n uint64
	for id := range s.All() {
		if id.Kind() == kind {
			n++
		}
	}
	return n
}

// CountInactive returns how many members are deactivated.
func (s *Set) CountInactive() uint64 {
	var n uint64
	for id := range s.All() {
		if !id.IsActive() {
			n++
		}
	}
	return n
}

// Union adds every member of other to s.
func (s *Set) Union(other *Set) {
	s.bitmap().Or(other.bitmap())
}

// Intersect keeps only the members of s also in other.
func (s *Set) Intersect(other *Set) {
	s.bitmap().And(other.bitmap())
}

// Difference removes every member of other from s.
func (s *Set) Difference(other *Set) {
	s.bitmap().AndNot(other.bitmap())
}

func (s *Set) Clone() *Set {
	return &Set{rb: s.bitmap().Clone()}
}

// MarshalBinary encodes the set in the portable roaring64 format.
func (s *Set) MarshalBinary() ([]byte, error) {
	rb := s.bitmap()
	rb.RunOptimize()
	return rb.MarshalBinary()
}

func (s *Set) UnmarshalBinary(b []byte) error {
	rb := roaring64.New()
	if err := rb.UnmarshalBinary(b); err != nil {
		return fmt.Errorf("decode identifier set: %w", err)
	}
	s.rb = rb
	return nil
}
