package memedit

import (
	"strconv"
	"strings"
)

// NavigationState tracks the first visible address of the viewport and the
// goto text-entry buffer. The viewport address is row-aligned relative to the
// active range start and always lies within [Start, End) after any mutation.
type NavigationState struct {
	viewport   uint64
	gotoActive bool
	gotoText   string
}

func (n *NavigationState) Viewport() uint64 {
	return n.viewport
}

// ClampTo resets the viewport to the range start when it no longer lies
// within the range. Called on region switch and reconfiguration.
func (n *NavigationState) ClampTo(r AddressRange) {
	if !r.Contains(n.viewport) {
		n.viewport = r.Start
	}
}

// Goto scrolls so the row containing addr becomes the first visible row.
// The viewport is unchanged on failure.
func (n *NavigationState) Goto(r AddressRange, addr uint64, bytesPerRow int) error {
	if !r.Contains(addr) {
		return ErrOutOfRange
	}
	row := (addr - r.Start) / uint64(bytesPerRow)
	n.viewport = r.Start + row*uint64(bytesPerRow)
	return nil
}

// Scroll moves the viewport by rows (negative scrolls toward the range
// start), clamped so the first visible row stays inside the range.
func (n *NavigationState) Scroll(r AddressRange, rows int, bytesPerRow int) {
	if r.Len() == 0 {
		n.viewport = r.Start
		return
	}
	lastRow := (r.Len() - 1) / uint64(bytesPerRow)
	row := int64((n.viewport - r.Start) / uint64(bytesPerRow))
	row += int64(rows)
	if row < 0 {
		row = 0
	}
	if row > int64(lastRow) {
		row = int64(lastRow)
	}
	n.viewport = r.Start + uint64(row)*uint64(bytesPerRow)
}

// BeginGotoInput opens an empty goto buffer.
func (n *NavigationState) BeginGotoInput() {
	n.gotoActive = true
	n.gotoText = ""
}

// UpdateGotoInput replaces the buffer contents without validation.
func (n *NavigationState) UpdateGotoInput(text string) {
	if !n.gotoActive {
		return
	}
	n.gotoText = text
}

// CancelGoto discards the buffer unconditionally.
func (n *NavigationState) CancelGoto() {
	n.gotoActive = false
	n.gotoText = ""
}

// ConfirmGoto parses the buffer as a hexadecimal address (optional 0x
// prefix) and jumps to it. Addresses that fall outside the range are retried
// as an offset from the range start, so `5` over [0xFF00, 0xFF80) jumps to
// 0xFF05. On any failure the buffer is kept for correction and the viewport
// is unchanged.
func (n *NavigationState) ConfirmGoto(r AddressRange, bytesPerRow int) (uint64, error) {
	text := strings.TrimSpace(n.gotoText)
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text = text[2:]
	}
	addr, err := strconv.ParseUint(text, 16, 64)
	if err != nil {
		return 0, ErrInvalidAddressText
	}
	if !r.Contains(addr) {
		offset := r.Start + addr
		if offset < r.Start || !r.Contains(offset) {
			return 0, ErrOutOfRange
		}
		addr = offset
	}
	if err := n.Goto(r, addr, bytesPerRow); err != nil {
		return 0, err
	}
	n.gotoActive = false
	n.gotoText = ""
	return addr, nil
}

func (n *NavigationState) GotoActive() bool {
	return n.gotoActive
}

func (n *NavigationState) GotoText() string {
	return n.gotoText
}
