// Package memedit implements the host-agnostic core of a hexadecimal
// memory inspector: named address regions over an abstract 64-bit store,
// viewport navigation with goto entry, byte span selection with numeric
// preview, and single-slot in-place cell editing. The core owns no bytes;
// it reads and writes through caller-supplied accessors and the store is
// borrowed per call. All state changes flow through Dispatch, one
// synchronous call per host frame, which returns a pure render model.
package memedit

// Input events, one concrete type per user gesture. The host translates its
// own input (keys, mouse) into these and hands a frame's worth to Dispatch.
type Event interface {
	isEvent()
}

type (
	// SelectRegionEvent switches the active region by name.
	SelectRegionEvent struct{ Name string }
	// CycleRegionEvent steps the active region forward or backward.
	CycleRegionEvent struct{ Delta int }
	// ScrollEvent moves the viewport by whole rows.
	ScrollEvent struct{ Rows int }
	// GotoEvent jumps straight to an address.
	GotoEvent struct{ Addr uint64 }
	// BeginGotoEvent opens the goto text entry.
	BeginGotoEvent struct{}
	// UpdateGotoEvent replaces the goto buffer.
	UpdateGotoEvent struct{ Text string }
	// ConfirmGotoEvent parses the buffer and jumps.
	ConfirmGotoEvent struct{}
	// CancelGotoEvent discards the goto buffer.
	CancelGotoEvent struct{}
	// BeginSelectEvent anchors a selection.
	BeginSelectEvent struct{ Addr uint64 }
	// ExtendSelectEvent drags the selection focus.
	ExtendSelectEvent struct{ Addr uint64 }
	// ClearSelectEvent drops the selection.
	ClearSelectEvent struct{}
	// BeginEditEvent opens a cell edit.
	BeginEditEvent struct{ Addr uint64 }
	// UpdateEditEvent replaces the edit buffer.
	UpdateEditEvent struct{ Text string }
	// CommitEditEvent writes the edited byte. With Advance set the edit
	// reopens on the next address when it is still in range.
	CommitEditEvent struct{ Advance bool }
	// CancelEditEvent discards the edit buffer.
	CancelEditEvent struct{}
)

func (SelectRegionEvent) isEvent() {}
func (CycleRegionEvent) isEvent()  {}
func (ScrollEvent) isEvent()       {}
func (GotoEvent) isEvent()         {}
func (BeginGotoEvent) isEvent()    {}
func (UpdateGotoEvent) isEvent()   {}
func (ConfirmGotoEvent) isEvent()  {}
func (CancelGotoEvent) isEvent()   {}
func (BeginSelectEvent) isEvent()  {}
func (ExtendSelectEvent) isEvent() {}
func (ClearSelectEvent) isEvent()  {}
func (BeginEditEvent) isEvent()    {}
func (UpdateEditEvent) isEvent()   {}
func (CommitEditEvent) isEvent()   {}
func (CancelEditEvent) isEvent()   {}

// PreviewOptions select how the bytes under the selection are decoded.
type PreviewOptions struct {
	Width  int // 1, 2, 4 or 8 bytes
	Endian Endianness
	Signed bool
}

// Options configure a new Editor.
type Options struct {
	Ranges      []AddressRange
	Read        ReadFunc
	Write       WriteFunc // nil puts the editor in read-only mode
	BytesPerRow int       // 1..64, default 16
	Rows        int       // visible rows, default 16
	Preview     PreviewOptions
}

// Cell is one byte position of the render model.
type Cell struct {
	Addr      uint64
	Value     byte
	Available bool
}

// Row is one rendered line: its start address, the cells, and the ASCII
// rendering of the available bytes.
type Row struct {
	Addr  uint64
	Cells []Cell
	ASCII string
}

// EditModel describes the in-progress edit, if any.
type EditModel struct {
	Active bool
	Addr   uint64
	Text   string
	Valid  bool
}

// PreviewModel carries the decoded selection preview.
type PreviewModel struct {
	Active bool
	Text   string
	ASCII  string
}

// RenderModel is the per-frame snapshot the host draws from. Pure data.
type RenderModel struct {
	Rows       []Row
	Region     string
	Regions    []string
	SelStart   uint64
	SelEnd     uint64
	SelActive  bool
	Edit       EditModel
	Preview    PreviewModel
	GotoText   string
	GotoActive bool
	Writable   bool
	// Notice is a short human-readable report of the last recoverable
	// error hit while applying this frame's events, empty when none.
	Notice string
}

// Editor is the composition root. It owns the region set and the
// navigation, selection and edit state, and borrows the store passed to
// each call. Single-threaded; Dispatch runs to completion every frame.
type Editor struct {
	regions RegionSet
	nav     NavigationState
	sel     SelectionState
	edit    EditState

	read        ReadFunc
	write       WriteFunc
	bytesPerRow int
	rows        int
	preview     PreviewOptions
}

// New validates the options and builds an editor positioned at the start of
// the first range.
func New(opts Options) (*Editor, error) {
	if opts.Read == nil {
		return nil, &ConfigError{Reason: "read accessor is required"}
	}
	e := &Editor{
		read:        opts.Read,
		write:       opts.Write,
		bytesPerRow: clampColumns(opts.BytesPerRow),
		rows:        opts.Rows,
		preview:     opts.Preview,
	}
	if e.rows < 1 {
		e.rows = 16
	}
	if e.preview.Width == 0 {
		e.preview = PreviewOptions{Width: 4, Endian: Little}
	}
	if err := e.SetRegions(opts.Ranges); err != nil {
		return nil, err
	}
	return e, nil
}

func clampColumns(n int) int {
	if n < 1 {
		return 16
	}
	if n > 64 {
		return 64
	}
	return n
}

// SetRegions replaces the region configuration and re-clamps all dependent
// state against the new active range. On failure the previous configuration,
// viewport, selection and edit are untouched.
func (e *Editor) SetRegions(ranges []AddressRange) error {
	if err := e.regions.Configure(ranges); err != nil {
		return err
	}
	e.reclamp()
	return nil
}

// SelectRegion switches the active region by name. The viewport re-clamps
// and a selection or edit outside the new range is dropped.
func (e *Editor) SelectRegion(name string) error {
	if err := e.regions.SelectByName(name); err != nil {
		return err
	}
	e.reclamp()
	return nil
}

// CycleRegion steps through the configured regions in order.
func (e *Editor) CycleRegion(delta int) {
	e.regions.Cycle(delta)
	e.reclamp()
}

func (e *Editor) reclamp() {
	r := e.regions.Active()
	e.nav.ClampTo(r)
	e.sel.ClampTo(r)
	e.edit.ClampTo(r)
}

// ActiveRegion returns the currently active range.
func (e *Editor) ActiveRegion() AddressRange {
	return e.regions.Active()
}

// SetViewSize sets the number of visible rows.
func (e *Editor) SetViewSize(rows int) {
	if rows < 1 {
		rows = 1
	}
	e.rows = rows
}

// SetBytesPerRow changes the row width and re-aligns the viewport to the
// new row grid.
func (e *Editor) SetBytesPerRow(n int) {
	e.bytesPerRow = clampColumns(n)
	r := e.regions.Active()
	row := (e.nav.Viewport() - r.Start) / uint64(e.bytesPerRow)
	_ = e.nav.Goto(r, r.Start+row*uint64(e.bytesPerRow), e.bytesPerRow)
}

// BytesPerRow returns the configured row width.
func (e *Editor) BytesPerRow() int {
	return e.bytesPerRow
}

// SetPreview changes the preview decode parameters.
func (e *Editor) SetPreview(opts PreviewOptions) {
	e.preview = opts
}

// PreviewConfig returns the current preview decode parameters.
func (e *Editor) PreviewConfig() PreviewOptions {
	return e.preview
}

// Writable reports whether a write accessor was configured.
func (e *Editor) Writable() bool {
	return e.write != nil
}

// Goto scrolls the active region so addr is on the first visible row.
func (e *Editor) Goto(addr uint64) error {
	return e.nav.Goto(e.regions.Active(), addr, e.bytesPerRow)
}

// BeginEdit opens an edit on addr, cancelling any edit already in progress.
func (e *Editor) BeginEdit(store any, addr uint64) error {
	return e.edit.Begin(e.regions.Active(), addr, e.write != nil, e.read, store)
}

// CommitEdit writes the edited byte. With advance set and the next address
// still inside the active range, editing continues there.
func (e *Editor) CommitEdit(store any, advance bool) (byte, error) {
	addr, _, _, editing := e.edit.Editing()
	v, err := e.edit.Commit(e.write, store)
	if err != nil {
		return 0, err
	}
	if advance && editing && e.regions.Active().Contains(addr+1) {
		if err := e.BeginEdit(store, addr+1); err == nil {
			e.sel.Begin(e.regions.Active(), addr+1)
		}
	}
	return v, nil
}

// Dispatch is the single per-frame entry point. Events are applied in a
// fixed order (region switches, then goto input, then selection, then
// edits) so a region switch issued in the same frame as a selection drag
// validates the drag against the new region's bounds. It then reads the
// visible window through the read accessor and returns the render model.
func (e *Editor) Dispatch(store any, events []Event) RenderModel {
	var notice string
	note := func(err error) {
		if err != nil {
			notice = err.Error()
		}
	}

	for _, ev := range events {
		switch ev := ev.(type) {
		case SelectRegionEvent:
			note(e.SelectRegion(ev.Name))
		case CycleRegionEvent:
			e.CycleRegion(ev.Delta)
		}
	}
	for _, ev := range events {
		switch ev := ev.(type) {
		case ScrollEvent:
			e.nav.Scroll(e.regions.Active(), ev.Rows, e.bytesPerRow)
		case GotoEvent:
			note(e.Goto(ev.Addr))
		case BeginGotoEvent:
			e.nav.BeginGotoInput()
		case UpdateGotoEvent:
			e.nav.UpdateGotoInput(ev.Text)
		case ConfirmGotoEvent:
			addr, err := e.nav.ConfirmGoto(e.regions.Active(), e.bytesPerRow)
			if err != nil {
				note(err)
			} else {
				e.sel.Begin(e.regions.Active(), addr)
			}
		case CancelGotoEvent:
			e.nav.CancelGoto()
		}
	}
	for _, ev := range events {
		switch ev := ev.(type) {
		case BeginSelectEvent:
			e.sel.Begin(e.regions.Active(), ev.Addr)
		case ExtendSelectEvent:
			e.sel.Extend(e.regions.Active(), ev.Addr)
		case ClearSelectEvent:
			e.sel.Clear()
		}
	}
	for _, ev := range events {
		switch ev := ev.(type) {
		case BeginEditEvent:
			note(e.BeginEdit(store, ev.Addr))
		case UpdateEditEvent:
			e.edit.UpdateText(ev.Text)
		case CommitEditEvent:
			_, err := e.CommitEdit(store, ev.Advance)
			note(err)
		case CancelEditEvent:
			e.edit.Cancel()
		}
	}

	m := e.render(store)
	m.Notice = notice
	return m
}

// render builds the frame snapshot without mutating state.
func (e *Editor) render(store any) RenderModel {
	r := e.regions.Active()
	m := RenderModel{
		Region:     r.Name,
		Regions:    e.regions.Names(),
		GotoText:   e.nav.GotoText(),
		GotoActive: e.nav.GotoActive(),
		Writable:   e.write != nil,
	}

	addr := e.nav.Viewport()
	for row := 0; row < e.rows && addr < r.End; row++ {
		cells := make([]Cell, 0, e.bytesPerRow)
		ascii := make([]byte, 0, e.bytesPerRow)
		for i := 0; i < e.bytesPerRow && addr < r.End; i++ {
			b, ok := e.read(store, addr)
			cells = append(cells, Cell{Addr: addr, Value: b, Available: ok})
			if ok && b >= 32 && b < 127 {
				ascii = append(ascii, b)
			} else {
				ascii = append(ascii, '.')
			}
			addr++
		}
		m.Rows = append(m.Rows, Row{
			Addr:  cells[0].Addr,
			Cells: cells,
			ASCII: string(ascii),
		})
	}

	if lo, hi, ok := e.sel.Span(); ok {
		m.SelStart, m.SelEnd, m.SelActive = lo, hi, true
		if pv, ok := e.sel.Preview(e.read, store, r, e.preview.Width, e.preview.Endian, e.preview.Signed); ok {
			m.Preview = PreviewModel{Active: true, Text: pv.Text, ASCII: pv.ASCII}
		}
	}
	if addr, text, valid, ok := e.edit.Editing(); ok {
		m.Edit = EditModel{Active: true, Addr: addr, Text: text, Valid: valid}
	}
	return m
}

// Selection returns the normalized selection span.
func (e *Editor) Selection() (lo, hi uint64, ok bool) {
	return e.sel.Span()
}

// Viewport returns the first visible address.
func (e *Editor) Viewport() uint64 {
	return e.nav.Viewport()
}

// RestoreView reapplies a saved viewport, region and selection, ignoring
// whatever no longer fits the current configuration. Used by hosts that
// persist per-file state between runs.
func (e *Editor) RestoreView(region string, viewport uint64, selStart, selEnd uint64, selActive bool) {
	if region != "" {
		_ = e.SelectRegion(region)
	}
	r := e.regions.Active()
	if r.Contains(viewport) {
		_ = e.nav.Goto(r, viewport, e.bytesPerRow)
	}
	if selActive {
		e.sel.Begin(r, selStart)
		e.sel.Extend(r, selEnd)
	}
}
