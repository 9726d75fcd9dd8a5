package memedit

// ReadFunc reads one byte from the backing store. The store is borrowed for
// the duration of the call only; the editor never keeps a reference to it.
// A false return marks the byte as unavailable and it is rendered as a
// placeholder instead of a value.
type ReadFunc func(store any, addr uint64) (byte, bool)

// WriteFunc writes one byte to the backing store. A nil WriteFunc puts the
// whole editor in read-only mode.
type WriteFunc func(store any, addr uint64, value byte)
