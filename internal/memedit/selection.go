package memedit

import (
	"encoding/binary"
	"strconv"
)

// Endianness selects the byte order for preview decoding.
type Endianness int

const (
	Little Endianness = iota
	Big
)

// SelectionState tracks an optional highlighted byte span. Anchor and focus
// are unordered; the span is [min, max] inclusive. Both ends lie within the
// active range.
type SelectionState struct {
	anchor uint64
	focus  uint64
	active bool
}

// Begin anchors a new selection at addr. Addresses outside the range are
// ignored.
func (s *SelectionState) Begin(r AddressRange, addr uint64) {
	if !r.Contains(addr) {
		return
	}
	s.anchor = addr
	s.focus = addr
	s.active = true
}

// Extend moves the focus end of the selection. Out-of-range addresses are
// clamped to the nearest range boundary so drag gestures never fail.
func (s *SelectionState) Extend(r AddressRange, addr uint64) {
	if !s.active || r.Len() == 0 {
		return
	}
	if addr < r.Start {
		addr = r.Start
	}
	if addr >= r.End {
		addr = r.End - 1
	}
	s.focus = addr
}

func (s *SelectionState) Clear() {
	s.active = false
	s.anchor = 0
	s.focus = 0
}

// ClampTo clears the selection when it no longer fits the range. Called on
// region switch and reconfiguration; a selection that still fits is kept.
func (s *SelectionState) ClampTo(r AddressRange) {
	if !s.active {
		return
	}
	lo, hi, _ := s.Span()
	if !r.Contains(lo) || !r.Contains(hi) {
		s.Clear()
	}
}

// Span returns the normalized inclusive selection bounds.
func (s *SelectionState) Span() (lo, hi uint64, ok bool) {
	if !s.active {
		return 0, 0, false
	}
	lo, hi = s.anchor, s.focus
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

func (s *SelectionState) Contains(addr uint64) bool {
	lo, hi, ok := s.Span()
	return ok && addr >= lo && addr <= hi
}

// PreviewValue is the decode of the bytes at the selection start.
type PreviewValue struct {
	Text  string
	ASCII string
	Bytes []byte
}

// Preview reads width bytes (1, 2, 4 or 8) starting at the selection
// minimum and decodes them with the requested byte order and signedness.
// It returns false when the selection is empty, the width is unsupported,
// or the read would cross the range end. Unavailable bytes read as zero.
func (s *SelectionState) Preview(read ReadFunc, store any, r AddressRange, width int, endian Endianness, signed bool) (PreviewValue, bool) {
	lo, _, ok := s.Span()
	if !ok {
		return PreviewValue{}, false
	}
	switch width {
	case 1, 2, 4, 8:
	default:
		return PreviewValue{}, false
	}
	if uint64(width) > r.End-lo {
		return PreviewValue{}, false
	}
	bytes := make([]byte, width)
	for i := range bytes {
		b, _ := read(store, lo+uint64(i))
		bytes[i] = b
	}
	return PreviewValue{
		Text:  decodeInt(bytes, endian, signed),
		ASCII: asciiString(bytes),
		Bytes: bytes,
	}, true
}

func decodeInt(bytes []byte, endian Endianness, signed bool) string {
	var u uint64
	switch len(bytes) {
	case 1:
		u = uint64(bytes[0])
	case 2:
		if endian == Big {
			u = uint64(binary.BigEndian.Uint16(bytes))
		} else {
			u = uint64(binary.LittleEndian.Uint16(bytes))
		}
	case 4:
		if endian == Big {
			u = uint64(binary.BigEndian.Uint32(bytes))
		} else {
			u = uint64(binary.LittleEndian.Uint32(bytes))
		}
	case 8:
		if endian == Big {
			u = binary.BigEndian.Uint64(bytes)
		} else {
			u = binary.LittleEndian.Uint64(bytes)
		}
	}
	if !signed {
		return strconv.FormatUint(u, 10)
	}
	switch len(bytes) {
	case 1:
		return strconv.FormatInt(int64(int8(u)), 10)
	case 2:
		return strconv.FormatInt(int64(int16(u)), 10)
	case 4:
		return strconv.FormatInt(int64(int32(u)), 10)
	default:
		return strconv.FormatInt(int64(u), 10)
	}
}

// asciiString renders bytes with printable ASCII kept and everything else
// shown as '.'.
func asciiString(bytes []byte) string {
	out := make([]byte, len(bytes))
	for i, b := range bytes {
		if b >= 32 && b < 127 {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
