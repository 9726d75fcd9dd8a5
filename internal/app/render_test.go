package app

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qhex/internal/memedit"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func screenLine(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func TestRenderHexGrid(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 80, 10)
	h.resize(s)

	h.render(s, h.ed.Dispatch(f, nil))

	line := screenLine(s, 0)
	if !strings.HasPrefix(line, "0000:") {
		t.Fatalf("row 0 = %q, want 0000: gutter", line)
	}
	if !strings.Contains(line, "00 01 02 03 04 05 06 07  08 09 0A 0B 0C 0D 0E 0F") {
		t.Fatalf("row 0 hex cells = %q", line)
	}
	line = screenLine(s, 1)
	if !strings.HasPrefix(line, "0010: 10 11") {
		t.Fatalf("row 1 = %q", line)
	}
}

func TestRenderASCIISidebar(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 80, 10)
	h.resize(s)

	h.render(s, h.ed.Dispatch(f, nil))

	// Bytes 0x41.. would be letters; 0x00..0x1F are all non-printable.
	line := screenLine(s, 0)
	if !strings.Contains(line, "................") {
		t.Fatalf("row 0 ascii = %q, want dots", line)
	}
	line = screenLine(s, 3)
	if !strings.Contains(line, "0123456789:;<=>?") {
		t.Fatalf("row 3 ascii = %q, want printable run", line)
	}

	h.showASCII = false
	h.render(s, h.ed.Dispatch(f, nil))
	if line := screenLine(s, 3); strings.Contains(line, "0123456789:;<=>?") {
		t.Fatalf("ascii sidebar still drawn after toggle: %q", line)
	}
}

func TestRenderStatusline(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 80, 10)
	h.resize(s)

	h.render(s, h.ed.Dispatch(f, nil))

	status := screenLine(s, 8)
	if !strings.Contains(status, "data.bin") {
		t.Fatalf("status = %q, want file name", status)
	}
	if !strings.Contains(status, "All") {
		t.Fatalf("status = %q, want region name", status)
	}
	if strings.Contains(status, "[ro]") {
		t.Fatalf("status = %q, writable store marked read-only", status)
	}
}

func TestRenderSelectionPreviewInStatusline(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 100, 10)
	h.resize(s)

	m := h.ed.Dispatch(f, []memedit.Event{memedit.BeginSelectEvent{Addr: 0x10}})
	h.render(s, m)

	status := screenLine(s, 8)
	if !strings.Contains(status, "sel 0x10") {
		t.Fatalf("status = %q, want selection address", status)
	}
	// Little-endian u32 at 0x10: 0x13121110.
	if !strings.Contains(status, "319951120") {
		t.Fatalf("status = %q, want preview value", status)
	}
}

func TestRenderGotoPrompt(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 80, 10)
	h.resize(s)

	m := h.ed.Dispatch(f, []memedit.Event{
		memedit.BeginGotoEvent{},
		memedit.UpdateGotoEvent{Text: "2a"},
	})
	h.render(s, m)

	prompt := screenLine(s, 9)
	if !strings.Contains(prompt, "goto: 2a") {
		t.Fatalf("prompt = %q, want goto input", prompt)
	}
}

func TestRenderNoticeOnPromptLine(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 80, 10)
	h.resize(s)

	m := h.ed.Dispatch(f, []memedit.Event{
		memedit.BeginGotoEvent{},
		memedit.UpdateGotoEvent{Text: "zz"},
		memedit.ConfirmGotoEvent{},
	})
	if m.Notice == "" {
		t.Fatalf("no notice after invalid goto text")
	}
	h.render(s, m)

	prompt := screenLine(s, 9)
	if !strings.Contains(prompt, m.Notice) {
		t.Fatalf("prompt = %q, want notice %q", prompt, m.Notice)
	}
}

func TestRenderEditBuffer(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 80, 10)
	h.resize(s)

	m := h.ed.Dispatch(f, []memedit.Event{
		memedit.BeginEditEvent{Addr: 0x01},
		memedit.UpdateEditEvent{Text: "F"},
	})
	h.render(s, m)

	line := screenLine(s, 0)
	if !strings.HasPrefix(line, "0000: 00 F_") {
		t.Fatalf("row 0 = %q, want edit buffer F_ in cell 1", line)
	}
}

func TestRenderStoresModelForModes(t *testing.T) {
	h, f := newTestHost(t)
	s := newTestScreen(t, 80, 10)
	h.resize(s)

	m := h.ed.Dispatch(f, []memedit.Event{memedit.BeginGotoEvent{}})
	h.render(s, m)
	if !h.model.GotoActive {
		t.Fatalf("host model not updated by render")
	}
}
