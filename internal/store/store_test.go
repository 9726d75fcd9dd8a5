package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mem.bin")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestOpenAndRead(t *testing.T) {
	path := writeTemp(t, []byte{0x01, 0x02, 0x03})
	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Len() != 3 {
		t.Fatalf("Len = %d, want 3", f.Len())
	}
	if b, ok := f.Byte(1); !ok || b != 0x02 {
		t.Fatalf("Byte(1) = 0x%X ok=%v, want 0x02 true", b, ok)
	}
	if _, ok := f.Byte(3); ok {
		t.Fatalf("Byte(3) in range for 3-byte file")
	}
}

func TestSetByteAndSave(t *testing.T) {
	path := writeTemp(t, []byte{0x00, 0x00})
	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	f.SetByte(1, 0xAB)
	if !f.Dirty() {
		t.Fatalf("not dirty after write")
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if f.Dirty() {
		t.Fatalf("dirty after save")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if data[1] != 0xAB {
		t.Fatalf("saved byte = 0x%X, want 0xAB", data[1])
	}
}

func TestSameValueWriteNotDirty(t *testing.T) {
	path := writeTemp(t, []byte{0x10})
	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	f.SetByte(0, 0x10)
	if f.Dirty() {
		t.Fatalf("dirty after no-op write")
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	path := writeTemp(t, []byte{0x01})
	f, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !f.ReadOnly() {
		t.Fatalf("ReadOnly = false")
	}
	f.SetByte(0, 0xFF)
	if b, _ := f.Byte(0); b != 0x01 {
		t.Fatalf("read-only store mutated: 0x%X", b)
	}
	if err := f.Save(); err == nil {
		t.Fatalf("Save on read-only store succeeded")
	}
}

func TestAccessors(t *testing.T) {
	path := writeTemp(t, []byte{0x00})
	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	Write(f, 0, 0x42)
	if b, ok := Read(f, 0); !ok || b != 0x42 {
		t.Fatalf("accessor round-trip = 0x%X ok=%v, want 0x42 true", b, ok)
	}
}
