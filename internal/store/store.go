// Package store provides the file-backed byte store the qhex CLI inspects.
// The whole file is read into memory; edits mark the buffer dirty and Save
// writes it back in place.
package store

import (
	"os"
)

type File struct {
	path     string
	data     []byte
	dirty    bool
	readOnly bool
}

// Open loads the file at path. With readOnly set (or when the file itself
// is not writable) edits are rejected and Save fails.
func Open(path string, readOnly bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !readOnly {
		if info, err := os.Stat(path); err == nil && info.Mode().Perm()&0o200 == 0 {
			readOnly = true
		}
	}
	return &File{path: path, data: data, readOnly: readOnly}, nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Len() uint64 {
	return uint64(len(f.data))
}

func (f *File) ReadOnly() bool {
	return f.readOnly
}

func (f *File) Dirty() bool {
	return f.dirty
}

// Byte returns the byte at addr, reporting false past the end of the file.
func (f *File) Byte(addr uint64) (byte, bool) {
	if addr >= uint64(len(f.data)) {
		return 0, false
	}
	return f.data[addr], true
}

// SetByte writes one byte and marks the buffer dirty. Out-of-bounds writes
// and writes on a read-only store are dropped.
func (f *File) SetByte(addr uint64, value byte) {
	if f.readOnly || addr >= uint64(len(f.data)) {
		return
	}
	if f.data[addr] == value {
		return
	}
	f.data[addr] = value
	f.dirty = true
}

// Save writes the buffer back to the file, preserving its permissions.
func (f *File) Save() error {
	if f.readOnly {
		return os.ErrPermission
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(f.path, f.data, mode); err != nil {
		return err
	}
	f.dirty = false
	return nil
}

// Read is the read accessor over a *File store.
func Read(store any, addr uint64) (byte, bool) {
	return store.(*File).Byte(addr)
}

// Write is the write accessor over a *File store.
func Write(store any, addr uint64, value byte) {
	store.(*File).SetByte(addr, value)
}
