package ident

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	tagPair     = "pair"
	tagInactive = "inactive"
)

// String formats id as "<low>v<value>" followed by "[pair]", "[inactive]"
// or "[pair,inactive]" when those flags are set, e.g. "12v55[pair]".
func (id Identifier) String() string {
	var tmp [48]byte
	return string(id.appendText(tmp[:0]))
}

func (id Identifier) appendText(dst []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(id.low), 10)
	dst = append(dst, 'v')
	dst = strconv.AppendUint(dst, uint64(id.Value()), 10)

	pair := id.Kind() == KindPair
	inactive := !id.IsActive()
	if !pair && !inactive {
		return dst
	}
	dst = append(dst, '[')
	if pair {
		dst = append(dst, tagPair...)
	}
	if inactive {
		if pair {
			dst = append(dst, ',')
		}
		dst = append(dst, tagInactive...)
	}
	return append(dst, ']')
}

// ParseIdentifier parses the form produced by String. It also accepts a raw
// packed word written in decimal or as 0x-prefixed hex.
func ParseIdentifier(s string) (Identifier, error) {
	if s == "" {
		return Identifier{}, fmt.Errorf("%w: empty", ErrInvalidText)
	}
	sep := strings.IndexByte(s, 'v')
	if sep < 0 {
		bits, err := parseRawBits(s)
		if err != nil {
			return Identifier{}, fmt.Errorf("%w: %q", ErrInvalidText, s)
		}
		return FromBits(bits), nil
	}

	low, err := parseSegment(s[:sep])
	if err != nil {
		return Identifier{}, fmt.Errorf("%w: bad low segment in %q", ErrInvalidText, s)
	}
	rest := s[sep+1:]
	tags := ""
	if open := strings.IndexByte(rest, '['); open >= 0 {
		rest, tags = rest[:open], rest[open:]
	}
	value, err := parseSegment(rest)
	if err != nil || value > uint64(MaxValue) {
		return Identifier{}, fmt.Errorf("%w: bad value in %q", ErrInvalidText, s)
	}

	high := uint32(value)
	switch tags {
	case "":
	case "[" + tagPair + "]":
		high |= KindBit
	case "[" + tagInactive + "]":
		high |= InactiveBit
	case "[" + tagPair + "," + tagInactive + "]":
		high |= KindBit | InactiveBit
	default:
		return Identifier{}, fmt.Errorf("%w: bad tags %q", ErrInvalidText, tags)
	}
	return Identifier{low: uint32(low), high: high}, nil
}

// parseSegment parses a 32-bit decimal segment of the text form. Leading
// zeros are rejected so every identifier has one spelling.
func parseSegment(s string) (uint64, error) {
	if len(s) > 1 && s[0] == '0' {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseUint(s, 10, 32)
}

func parseRawBits(s string) (uint64, error) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// AppendText appends the String form of id to dst.
func (id Identifier) AppendText(dst []byte) ([]byte, error) {
	return id.appendText(dst), nil
}

func (id Identifier) MarshalText() ([]byte, error) {
	return id.appendText(make([]byte, 0, 32)), nil
}

func (id *Identifier) UnmarshalText(b []byte) error {
	v, err := ParseIdentifier(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// UnmarshalJSON accepts either a string in text form or a non-negative
// integer holding the packed word. null leaves id unchanged.
func (id *Identifier) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		return fmt.Errorf("%w: empty", ErrInvalidJSON)
	case string(b) == "null":
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return id.UnmarshalText([]byte(s))
	default:
		bits, err := strconv.ParseUint(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidJSON, b)
		}
		*id = FromBits(bits)
		return nil
	}
}
