package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qhex/internal/config"
	"github.com/kobzarvs/qhex/internal/memedit"
	"github.com/kobzarvs/qhex/internal/store"
)

// newTestHost opens a 64-byte file where every byte equals its offset and
// wires a host around it with the default configuration.
func newTestHost(t *testing.T) (*host, *store.File) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.bin")
	data := make([]byte, 64)
	for i := range data {
		data[i] = byte(i)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	f, err := store.Open(path, false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	cfg := config.Default()
	ed, err := memedit.New(memedit.Options{
		Ranges:      []memedit.AddressRange{{Name: "All", Start: 0, End: f.Len()}},
		Read:        store.Read,
		Write:       store.Write,
		BytesPerRow: 16,
		Preview:     memedit.PreviewOptions{Width: 4, Endian: memedit.Little},
	})
	if err != nil {
		t.Fatalf("memedit.New: %v", err)
	}
	h := newHost(cfg, ed, f)
	h.viewRows = 8
	ed.SetViewSize(8)
	return h, f
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestTranslateScrollKeys(t *testing.T) {
	h, _ := newTestHost(t)

	events, quit := h.translate(key(tcell.KeyDown, 0), nil)
	if quit {
		t.Fatalf("down requested quit")
	}
	if len(events) != 1 || events[0] != (memedit.ScrollEvent{Rows: 1}) {
		t.Fatalf("down events = %v, want one ScrollEvent{1}", events)
	}

	events, _ = h.translate(key(tcell.KeyPgDn, 0), nil)
	if len(events) != 1 || events[0] != (memedit.ScrollEvent{Rows: 8}) {
		t.Fatalf("pgdn events = %v, want one ScrollEvent{8}", events)
	}
}

func TestTranslateQuit(t *testing.T) {
	h, _ := newTestHost(t)
	if _, quit := h.translate(key(tcell.KeyRune, 'q'), nil); !quit {
		t.Fatalf("q did not request quit")
	}
	if _, quit := h.translate(key(tcell.KeyCtrlC, 0), nil); !quit {
		t.Fatalf("ctrl+c did not request quit")
	}
}

func TestTranslateCursorKeys(t *testing.T) {
	h, _ := newTestHost(t)

	events, _ := h.translate(key(tcell.KeyRight, 0), nil)
	if len(events) != 1 || events[0] != (memedit.BeginSelectEvent{Addr: 1}) {
		t.Fatalf("right events = %v, want BeginSelect at 1", events)
	}
	if h.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", h.cursor)
	}

	events, _ = h.translate(key(tcell.KeyRight, 0), nil)
	if events[0] != (memedit.BeginSelectEvent{Addr: 2}) {
		t.Fatalf("second right = %v, want BeginSelect at 2", events)
	}

	events, _ = h.translate(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), nil)
	if len(events) != 1 || events[0] != (memedit.ExtendSelectEvent{Addr: 1}) {
		t.Fatalf("shift+left = %v, want ExtendSelect at 1", events)
	}
}

func TestMoveCursorClampsToRegion(t *testing.T) {
	h, _ := newTestHost(t)

	h.moveCursor(-5, false)
	if h.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", h.cursor)
	}
	h.moveCursor(1000, false)
	if h.cursor != 63 {
		t.Fatalf("cursor = %d, want 63", h.cursor)
	}
}

func TestTranslateGotoMode(t *testing.T) {
	h, _ := newTestHost(t)

	events, _ := h.translate(key(tcell.KeyRune, 'g'), nil)
	if len(events) != 1 || events[0] != (memedit.BeginGotoEvent{}) {
		t.Fatalf("g events = %v, want BeginGoto", events)
	}

	h.model.GotoActive = true
	h.model.GotoText = "1"
	events, _ = h.translate(key(tcell.KeyRune, 'f'), nil)
	if len(events) != 1 || events[0] != (memedit.UpdateGotoEvent{Text: "1f"}) {
		t.Fatalf("rune in goto mode = %v, want UpdateGoto 1f", events)
	}

	events, _ = h.translate(key(tcell.KeyRune, 'z'), nil)
	if len(events) != 0 {
		t.Fatalf("non-hex rune in goto mode = %v, want nothing", events)
	}

	h.model.GotoText = "1f"
	events, _ = h.translate(key(tcell.KeyBackspace2, 0), nil)
	if events[0] != (memedit.UpdateGotoEvent{Text: "1"}) {
		t.Fatalf("backspace = %v, want UpdateGoto 1", events)
	}

	events, _ = h.translate(key(tcell.KeyEnter, 0), nil)
	if events[0] != (memedit.ConfirmGotoEvent{}) {
		t.Fatalf("enter = %v, want ConfirmGoto", events)
	}

	events, _ = h.translate(key(tcell.KeyEscape, 0), nil)
	if events[0] != (memedit.CancelGotoEvent{}) {
		t.Fatalf("esc = %v, want CancelGoto", events)
	}
}

func TestTranslateEditMode(t *testing.T) {
	h, _ := newTestHost(t)
	h.model.Edit = memedit.EditModel{Active: true, Addr: 3, Text: "A"}

	events, _ := h.translate(key(tcell.KeyRune, 'b'), nil)
	if len(events) != 1 || events[0] != (memedit.UpdateEditEvent{Text: "Ab"}) {
		t.Fatalf("rune in edit mode = %v, want UpdateEdit Ab", events)
	}

	h.model.Edit.Text = "Ab"
	events, _ = h.translate(key(tcell.KeyRune, 'c'), nil)
	if len(events) != 0 {
		t.Fatalf("third digit = %v, want nothing", events)
	}

	events, _ = h.translate(key(tcell.KeyEnter, 0), nil)
	if events[0] != (memedit.CommitEditEvent{}) {
		t.Fatalf("enter = %v, want CommitEdit", events)
	}

	events, _ = h.translate(key(tcell.KeyTab, 0), nil)
	if events[0] != (memedit.CommitEditEvent{Advance: true}) {
		t.Fatalf("tab = %v, want CommitEdit advance", events)
	}

	events, _ = h.translate(key(tcell.KeyEscape, 0), nil)
	if events[0] != (memedit.CancelEditEvent{}) {
		t.Fatalf("esc = %v, want CancelEdit", events)
	}
}

func TestTranslateEditCellUsesCursor(t *testing.T) {
	h, _ := newTestHost(t)
	h.cursor = 7
	events, _ := h.translate(key(tcell.KeyEnter, 0), nil)
	if len(events) != 1 || events[0] != (memedit.BeginEditEvent{Addr: 7}) {
		t.Fatalf("enter in normal mode = %v, want BeginEdit at 7", events)
	}
}

func TestTranslateTogglesDoNotEmitEvents(t *testing.T) {
	h, _ := newTestHost(t)

	if events, _ := h.translate(key(tcell.KeyRune, 'a'), nil); len(events) != 0 {
		t.Fatalf("toggle_ascii emitted %v", events)
	}
	if h.showASCII {
		t.Fatalf("showASCII still on after toggle")
	}

	h.translate(key(tcell.KeyRune, 'w'), nil)
	if got := h.ed.PreviewConfig().Width; got != 8 {
		t.Fatalf("preview width after cycle = %d, want 8", got)
	}
	h.translate(key(tcell.KeyRune, 'e'), nil)
	if got := h.ed.PreviewConfig().Endian; got != memedit.Big {
		t.Fatalf("preview endian after toggle = %v, want big", got)
	}
	h.translate(key(tcell.KeyRune, 's'), nil)
	if !h.ed.PreviewConfig().Signed {
		t.Fatalf("preview not signed after toggle")
	}
}

func TestTranslateMouseWheel(t *testing.T) {
	h, _ := newTestHost(t)
	ev := tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)
	events, _ := h.translate(ev, nil)
	if len(events) != 1 || events[0] != (memedit.ScrollEvent{Rows: 3}) {
		t.Fatalf("wheel down = %v, want ScrollEvent{3}", events)
	}
}

func TestMouseSelectAndDrag(t *testing.T) {
	h, f := newTestHost(t)
	h.model = h.ed.Dispatch(f, nil)

	gutter := h.gutterWidth()
	click := tcell.NewEventMouse(gutter+cellOffset(2), 1, tcell.Button1, tcell.ModNone)
	events, _ := h.translate(click, nil)
	if len(events) != 1 || events[0] != (memedit.BeginSelectEvent{Addr: 0x12}) {
		t.Fatalf("click = %v, want BeginSelect at 0x12", events)
	}

	drag := tcell.NewEventMouse(gutter+cellOffset(5), 1, tcell.Button1, tcell.ModNone)
	events, _ = h.translate(drag, nil)
	if len(events) != 1 || events[0] != (memedit.ExtendSelectEvent{Addr: 0x15}) {
		t.Fatalf("drag = %v, want ExtendSelect at 0x15", events)
	}

	release := tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone)
	h.translate(release, nil)
	if h.dragging {
		t.Fatalf("still dragging after release")
	}
}

func TestAddrAtASCIISidebar(t *testing.T) {
	h, f := newTestHost(t)
	h.model = h.ed.Dispatch(f, nil)

	x := h.gutterWidth() + cellOffset(h.ed.BytesPerRow()) + 2
	addr, ok := h.addrAt(x+4, 2)
	if !ok || addr != 0x24 {
		t.Fatalf("addrAt ascii = %#x, %v, want 0x24, true", addr, ok)
	}

	if _, ok := h.addrAt(0, 0); ok {
		t.Fatalf("gutter position mapped to a cell")
	}
}

func TestGutterWidthMinimumDigits(t *testing.T) {
	h, _ := newTestHost(t)
	if got := h.gutterWidth(); got != 6 {
		t.Fatalf("gutterWidth = %d, want 6", got)
	}
}
