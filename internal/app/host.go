package app

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qhex/internal/config"
	"github.com/kobzarvs/qhex/internal/logger"
	"github.com/kobzarvs/qhex/internal/memedit"
	"github.com/kobzarvs/qhex/internal/store"
)

// host translates terminal events into core events and paints the render
// model. It keeps only presentation state; everything the editor actually
// needs lives in the core.
type host struct {
	cfg config.Config
	ed  *memedit.Editor
	st  *store.File

	model     memedit.RenderModel
	cursor    uint64
	dragging  bool
	showASCII bool
	dimZeros  bool
	status    string
	viewRows  int

	styles styles
}

func newHost(cfg config.Config, ed *memedit.Editor, st *store.File) *host {
	return &host{
		cfg:       cfg,
		ed:        ed,
		st:        st,
		cursor:    ed.ActiveRegion().Start,
		showASCII: !cfg.Editor.HideASCII,
		dimZeros:  cfg.Editor.DimZeros,
		styles:    newStyles(cfg.Theme),
	}
}

// resize recomputes the visible row count from the screen size. Two lines
// are reserved for the statusline and the prompt line.
func (h *host) resize(s tcell.Screen) {
	_, height := s.Size()
	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	h.viewRows = rows
	h.ed.SetViewSize(rows)
}

// translate maps one terminal event to a batch of core events. The second
// return requests shutdown.
func (h *host) translate(ev tcell.Event, s tcell.Screen) ([]memedit.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.Sync()
		h.resize(s)
		return nil, false
	case *tcell.EventKey:
		h.status = ""
		if h.model.GotoActive {
			return h.handleGotoKey(ev), false
		}
		if h.model.Edit.Active {
			return h.handleEditKey(ev), false
		}
		return h.handleNormalKey(ev)
	case *tcell.EventMouse:
		return h.handleMouse(ev), false
	}
	return nil, false
}

func (h *host) handleGotoKey(ev *tcell.EventKey) []memedit.Event {
	switch ev.Key() {
	case tcell.KeyEnter:
		return []memedit.Event{memedit.ConfirmGotoEvent{}}
	case tcell.KeyEscape:
		return []memedit.Event{memedit.CancelGotoEvent{}}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		text := h.model.GotoText
		if text != "" {
			text = text[:len(text)-1]
		}
		return []memedit.Event{memedit.UpdateGotoEvent{Text: text}}
	case tcell.KeyRune:
		r := ev.Rune()
		if isHexRune(r) || r == 'x' || r == 'X' {
			return []memedit.Event{memedit.UpdateGotoEvent{Text: h.model.GotoText + string(r)}}
		}
	}
	return nil
}

func (h *host) handleEditKey(ev *tcell.EventKey) []memedit.Event {
	switch h.cfg.Keymap.Edit[keyString(ev)] {
	case "commit":
		return []memedit.Event{memedit.CommitEditEvent{}}
	case "commit_advance":
		return []memedit.Event{memedit.CommitEditEvent{Advance: true}}
	case "cancel":
		return []memedit.Event{memedit.CancelEditEvent{}}
	}
	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		text := h.model.Edit.Text
		if text != "" {
			text = text[:len(text)-1]
		}
		return []memedit.Event{memedit.UpdateEditEvent{Text: text}}
	case tcell.KeyRune:
		r := ev.Rune()
		if isHexRune(r) && len(h.model.Edit.Text) < 2 {
			return []memedit.Event{memedit.UpdateEditEvent{Text: h.model.Edit.Text + string(r)}}
		}
	}
	return nil
}

func (h *host) handleNormalKey(ev *tcell.EventKey) ([]memedit.Event, bool) {
	action := h.cfg.Keymap.Normal[keyString(ev)]
	r := h.ed.ActiveRegion()
	switch action {
	case "quit":
		return nil, true
	case "scroll_up":
		return []memedit.Event{memedit.ScrollEvent{Rows: -1}}, false
	case "scroll_down":
		return []memedit.Event{memedit.ScrollEvent{Rows: 1}}, false
	case "page_up":
		return []memedit.Event{memedit.ScrollEvent{Rows: -h.viewRows}}, false
	case "page_down":
		return []memedit.Event{memedit.ScrollEvent{Rows: h.viewRows}}, false
	case "region_start":
		h.cursor = r.Start
		return []memedit.Event{memedit.GotoEvent{Addr: r.Start}, memedit.BeginSelectEvent{Addr: r.Start}}, false
	case "region_end":
		if r.Len() == 0 {
			return nil, false
		}
		last := r.End - 1
		h.cursor = last
		return []memedit.Event{memedit.GotoEvent{Addr: last}, memedit.BeginSelectEvent{Addr: last}}, false
	case "select_left":
		return h.moveCursor(-1, false), false
	case "select_right":
		return h.moveCursor(1, false), false
	case "extend_left":
		return h.moveCursor(-1, true), false
	case "extend_right":
		return h.moveCursor(1, true), false
	case "goto_prompt":
		return []memedit.Event{memedit.BeginGotoEvent{}}, false
	case "region_next":
		return []memedit.Event{memedit.CycleRegionEvent{Delta: 1}}, false
	case "region_prev":
		return []memedit.Event{memedit.CycleRegionEvent{Delta: -1}}, false
	case "edit_cell":
		return []memedit.Event{memedit.BeginEditEvent{Addr: h.cursor}}, false
	case "clear_selection":
		return []memedit.Event{memedit.ClearSelectEvent{}}, false
	case "toggle_ascii":
		h.showASCII = !h.showASCII
		return nil, false
	case "preview_width":
		p := h.ed.PreviewConfig()
		p.Width = nextWidth(p.Width)
		h.ed.SetPreview(p)
		return nil, false
	case "preview_endian":
		p := h.ed.PreviewConfig()
		if p.Endian == memedit.Little {
			p.Endian = memedit.Big
		} else {
			p.Endian = memedit.Little
		}
		h.ed.SetPreview(p)
		return nil, false
	case "preview_signed":
		p := h.ed.PreviewConfig()
		p.Signed = !p.Signed
		h.ed.SetPreview(p)
		return nil, false
	case "save":
		if err := h.st.Save(); err != nil {
			h.status = "save failed: " + err.Error()
			logger.Error("save failed", "path", h.st.Path(), "error", err)
		} else {
			h.status = "saved " + h.st.Path()
			logger.Info("saved", "path", h.st.Path())
		}
		return nil, false
	}
	return nil, false
}

// moveCursor steps the one-byte selection cursor, clamped to the active
// region. With extend set the selection focus is dragged instead.
func (h *host) moveCursor(delta int64, extend bool) []memedit.Event {
	r := h.ed.ActiveRegion()
	if r.Len() == 0 {
		return nil
	}
	addr := h.cursor
	if delta < 0 {
		step := uint64(-delta)
		if addr < r.Start+step {
			addr = r.Start
		} else {
			addr -= step
		}
	} else {
		addr += uint64(delta)
		if addr > r.End-1 {
			addr = r.End - 1
		}
	}
	h.cursor = addr
	if extend {
		return []memedit.Event{memedit.ExtendSelectEvent{Addr: addr}}
	}
	return []memedit.Event{memedit.BeginSelectEvent{Addr: addr}}
}

func (h *host) handleMouse(ev *tcell.EventMouse) []memedit.Event {
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		return []memedit.Event{memedit.ScrollEvent{Rows: -3}}
	case ev.Buttons()&tcell.WheelDown != 0:
		return []memedit.Event{memedit.ScrollEvent{Rows: 3}}
	case ev.Buttons()&tcell.Button1 != 0:
		x, y := ev.Position()
		addr, ok := h.addrAt(x, y)
		if !ok {
			return nil
		}
		h.cursor = addr
		if h.dragging {
			return []memedit.Event{memedit.ExtendSelectEvent{Addr: addr}}
		}
		h.dragging = true
		return []memedit.Event{memedit.BeginSelectEvent{Addr: addr}}
	default:
		h.dragging = false
	}
	return nil
}

// addrAt maps a screen position to the byte cell under it, in either the
// hex grid or the ASCII sidebar.
func (h *host) addrAt(x, y int) (uint64, bool) {
	if y < 0 || y >= len(h.model.Rows) {
		return 0, false
	}
	row := h.model.Rows[y]
	gutter := h.gutterWidth()
	for i := range row.Cells {
		cx := gutter + cellOffset(i)
		if x >= cx && x < cx+2 {
			return row.Cells[i].Addr, true
		}
	}
	if h.showASCII {
		asciiX := gutter + cellOffset(h.ed.BytesPerRow()) + 2
		i := x - asciiX
		if i >= 0 && i < len(row.Cells) {
			return row.Cells[i].Addr, true
		}
	}
	return 0, false
}

// gutterWidth is the address column width: enough hex digits for the last
// address of the active region, a colon and a space.
func (h *host) gutterWidth() int {
	return addressDigits(h.ed.ActiveRegion()) + 2
}

func addressDigits(r memedit.AddressRange) int {
	last := r.End
	if last > 0 {
		last--
	}
	digits := len(strconv.FormatUint(last, 16))
	if digits < 4 {
		digits = 4
	}
	return digits
}

// cellOffset is the x offset of hex cell i from the gutter edge, with an
// extra gap every 8 bytes.
func cellOffset(i int) int {
	return i*3 + i/8
}

func nextWidth(w int) int {
	switch w {
	case 1:
		return 2
	case 2:
		return 4
	case 4:
		return 8
	default:
		return 1
	}
}

func isHexRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// parseAddr parses a hex address with an optional 0x prefix.
func parseAddr(text string) (uint64, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		text = text[2:]
	}
	return strconv.ParseUint(text, 16, 64)
}
