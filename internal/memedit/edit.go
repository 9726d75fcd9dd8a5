package memedit

import (
	"fmt"
	"strconv"
)

// EditState is the single-slot cell edit machine: Idle, or Editing one
// address with a partially typed hex buffer.
type EditState struct {
	editing bool
	addr    uint64
	text    string
	valid   bool
}

// Begin starts editing addr, seeding the buffer with the current byte
// formatted as two hex digits. Requires a writable store and an in-range
// address. Starting a new edit implicitly cancels an in-progress one;
// nothing is written for the abandoned edit.
func (e *EditState) Begin(r AddressRange, addr uint64, writable bool, read ReadFunc, store any) error {
	if !writable {
		return ErrReadOnly
	}
	if !r.Contains(addr) {
		return ErrOutOfRange
	}
	b, _ := read(store, addr)
	e.editing = true
	e.addr = addr
	e.text = fmt.Sprintf("%02X", b)
	e.valid = true
	return nil
}

// UpdateText replaces the buffer and revalidates. Invalid text is retained
// so the user can keep typing; valid reflects whether the buffer parses as
// one hex byte.
func (e *EditState) UpdateText(text string) {
	if !e.editing {
		return
	}
	e.text = text
	_, err := parseByte(text)
	e.valid = err == nil
}

// Commit parses the buffer, writes the byte exactly once and returns to
// Idle. When the buffer is invalid it fails with ErrInvalidValue and the
// edit stays in place, buffer untouched.
func (e *EditState) Commit(write WriteFunc, store any) (byte, error) {
	if !e.editing || !e.valid {
		return 0, ErrInvalidValue
	}
	v, err := parseByte(e.text)
	if err != nil {
		return 0, ErrInvalidValue
	}
	write(store, e.addr, v)
	e.reset()
	return v, nil
}

// Cancel discards the buffer unconditionally.
func (e *EditState) Cancel() {
	e.reset()
}

// ClampTo cancels an edit whose target fell outside the range. Called on
// region switch and reconfiguration.
func (e *EditState) ClampTo(r AddressRange) {
	if e.editing && !r.Contains(e.addr) {
		e.reset()
	}
}

// Editing returns the in-progress edit, if any.
func (e *EditState) Editing() (addr uint64, text string, valid bool, ok bool) {
	return e.addr, e.text, e.valid, e.editing
}

func (e *EditState) reset() {
	e.editing = false
	e.addr = 0
	e.text = ""
	e.valid = false
}

// parseByte accepts one or two hex digits.
func parseByte(text string) (byte, error) {
	if text == "" || len(text) > 2 {
		return 0, ErrInvalidValue
	}
	v, err := strconv.ParseUint(text, 16, 8)
	if err != nil {
		return 0, ErrInvalidValue
	}
	return byte(v), nil
}
