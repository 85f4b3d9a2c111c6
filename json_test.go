package ident

import (
	"errors"
	"testing"
)

func TestParseJSONList(t *testing.T) {
	data := []byte(` [12, "12v55[pair]", "0x7fffffff0000000c", 18446744073709551615, "3v4[inactive]"] `)
	got, err := ParseJSONList(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Identifier{
		FromBits(12),
		New(12, 55, KindPair),
		FromBits(0x7FFF_FFFF_0000_000C),
		FromBits(0xFFFF_FFFF_FFFF_FFFF),
		New(3, 4, KindEntity).Deactivate(),
	}
	if len(got) != len(want) {
		t.Fatalf("parsed %d identifiers want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("identifier %d got=%s want=%s", i, got[i], want[i])
		}
	}
}

func TestParseJSONListEmpty(t *testing.T) {
	got, err := ParseJSONList([]byte("[]"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("parsed %d identifiers from empty list", len(got))
	}
}

func TestParseJSONListRejects(t *testing.T) {
	bad := []string{
		"",
		"12",
		`{"a":1}`,
		"[-1]",
		"[1.5]",
		"[[1]]",
		"[null]",
		"[true]",
		`[1, 2`,
	}
	for _, in := range bad {
		if _, err := ParseJSONList([]byte(in)); !errors.Is(err, ErrInvalidJSON) {
			t.Fatalf("parse %q: got err=%v want ErrInvalidJSON", in, err)
		}
	}

	_, err := ParseJSONList([]byte(`["nope"]`))
	if !errors.Is(err, ErrInvalidJSON) || !errors.Is(err, ErrInvalidText) {
		t.Fatalf("parse bad text: got err=%v want ErrInvalidJSON and ErrInvalidText", err)
	}
}

func TestParseJSONListStdFallback(t *testing.T) {
	got, err := parseJSONListStd([]byte(`[12, "12v55[pair]"]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 2 || got[0] != FromBits(12) || got[1] != New(12, 55, KindPair) {
		t.Fatalf("parse got=%v", got)
	}
	if _, err := parseJSONListStd([]byte(`[null]`)); !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("null element: got err=%v want ErrInvalidJSON", err)
	}
}
