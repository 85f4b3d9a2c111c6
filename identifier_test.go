package ident

import (
	"slices"
	"testing"
)

func TestIdentifierConstruction(t *testing.T) {
	id := New(12, 55, KindEntity)

	if id.Low() != 12 {
		t.Fatalf("low got=%d want=12", id.Low())
	}
	if id.High() != 55 {
		t.Fatalf("high got=%d want=55", id.High())
	}
	if id.Value() != 55 {
		t.Fatalf("value got=%d want=55", id.Value())
	}
	if id.Kind() != KindEntity {
		t.Fatalf("kind got=%s want=entity", id.Kind())
	}
	// All identifiers start active.
	if !id.IsActive() {
		t.Fatal("expected new identifier to be active")
	}
}

func TestIdentifierConstructionPair(t *testing.T) {
	id := New(12, 55, KindPair)

	if id.High() != KindBit|55 {
		t.Fatalf("high got=0x%08X want=0x%08X", id.High(), KindBit|55)
	}
	if id.Value() != 55 || id.Kind() != KindPair || !id.IsActive() {
		t.Fatalf("unexpected fields: %s", id)
	}
	if id.ToBits() != 0x8000_0037_0000_000C {
		t.Fatalf("bits got=0x%016X", id.ToBits())
	}
}

func TestNewMasksFlagBits(t *testing.T) {
	id := New(1, 0xFFFF_FFFF, KindEntity)

	if id.High() != 0x3FFF_FFFF {
		t.Fatalf("high got=0x%08X want=0x3FFFFFFF", id.High())
	}
	if id.Kind() != KindEntity {
		t.Fatalf("kind got=%s want=entity", id.Kind())
	}
	if !id.IsActive() {
		t.Fatal("caller bits leaked into the inactive flag")
	}
}

func TestIdentifierFromBits(t *testing.T) {
	// Maximum value plus the inactive flag, entity kind.
	const high uint64 = 0x7FFF_FFFF
	const low uint64 = 12
	bits := high<<32 | low

	id := FromBits(bits)

	if id.ToBits() != 0x7FFF_FFFF_0000_000C {
		t.Fatalf("bits got=0x%016X", id.ToBits())
	}
	if id.Low() != 12 {
		t.Fatalf("low got=%d want=12", id.Low())
	}
	if id.High() != 0x7FFF_FFFF {
		t.Fatalf("high got=0x%08X want=0x7FFFFFFF", id.High())
	}
	if id.Value() != 0x3FFF_FFFF {
		t.Fatalf("value got=0x%08X want=0x3FFFFFFF", id.Value())
	}
	if id.Kind() != KindEntity {
		t.Fatalf("kind got=%s want=entity", id.Kind())
	}
	if id.IsActive() {
		t.Fatal("expected inactive identifier")
	}
}

func TestIdentifierFromBitsKeepsEveryPattern(t *testing.T) {
	words := []uint64{0, 1, 0xFFFF_FFFF_FFFF_FFFF, 0x8000_0000_0000_0000, 0x4000_0000_0000_0000, 0xC000_0000_FFFF_FFFF}
	for _, w := range words {
		if got := FromBits(w).ToBits(); got != w {
			t.Fatalf("round trip got=0x%016X want=0x%016X", got, w)
		}
	}
}

func TestIdentifierDeactivation(t *testing.T) {
	id := New(12, 55, KindEntity)

	deactivated := id.Deactivate()
	if deactivated.IsActive() {
		t.Fatal("expected deactivated identifier")
	}
	// The underlying bits differ, so the identifiers no longer match.
	if deactivated == id {
		t.Fatal("deactivated identifier equals original")
	}
	if deactivated.ToBits()^id.ToBits() != uint64(InactiveBit)<<32 {
		t.Fatalf("deactivation changed more than one bit: 0x%016X", deactivated.ToBits()^id.ToBits())
	}

	reactivated := deactivated.Activate()
	if !reactivated.IsActive() {
		t.Fatal("expected reactivated identifier")
	}
	if reactivated != id {
		t.Fatalf("reactivated got=%s want=%s", reactivated, id)
	}
	if id.Activate() != id {
		t.Fatal("activating an active identifier changed it")
	}
}

func TestFlagIndependence(t *testing.T) {
	for _, kind := range []Kind{KindEntity, KindPair} {
		id := New(7, 99, kind)
		off := id.Deactivate()
		if off.Kind() != kind {
			t.Fatalf("deactivate changed kind %s to %s", kind, off.Kind())
		}
		if off.Value() != 99 || off.Low() != 7 {
			t.Fatalf("deactivate changed value: %s", off)
		}

		flipped := FromBits(PackBits(off.Low(), PackKindIntoHigh(off.High(), KindPair)))
		if flipped.IsActive() {
			t.Fatal("packing kind reactivated the identifier")
		}
	}
}

func TestIdentifierCompare(t *testing.T) {
	ids := []Identifier{
		New(0, 0, KindPair),
		New(5, 1, KindEntity),
		New(5, 1, KindEntity).Deactivate(),
		New(9, 0, KindEntity),
		New(0, 1, KindEntity),
	}
	slices.SortFunc(ids, Identifier.Compare)

	for i := 1; i < len(ids); i++ {
		if ids[i-1].ToBits() >= ids[i].ToBits() {
			t.Fatalf("not sorted by bits at %d: 0x%016X >= 0x%016X", i, ids[i-1].ToBits(), ids[i].ToBits())
		}
		if !ids[i-1].Less(ids[i]) {
			t.Fatalf("Less disagrees with Compare at %d", i)
		}
	}
	// Pairs carry bit 63 and sort after every entity.
	if ids[len(ids)-1].Kind() != KindPair {
		t.Fatalf("last identifier got=%s want a pair", ids[len(ids)-1])
	}
	if New(1, 2, KindEntity).Compare(New(1, 2, KindEntity)) != 0 {
		t.Fatal("equal identifiers compare non-zero")
	}
}

func TestIdentifierMapKey(t *testing.T) {
	seen := map[Identifier]int{}
	seen[New(1, 2, KindEntity)]++
	seen[FromBits(PackBits(1, 2))]++
	seen[New(1, 2, KindPair)]++

	if len(seen) != 2 {
		t.Fatalf("map has %d keys want 2", len(seen))
	}
	if seen[New(1, 2, KindEntity)] != 2 {
		t.Fatalf("entity key count got=%d want=2", seen[New(1, 2, KindEntity)])
	}
}

func TestZeroIdentifier(t *testing.T) {
	var id Identifier
	if id != New(0, 0, KindEntity) || id.ToBits() != 0 {
		t.Fatalf("zero identifier got=%s", id)
	}
}
