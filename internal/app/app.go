package app

import (
	"errors"
	"path/filepath"
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qhex/internal/config"
	"github.com/kobzarvs/qhex/internal/logger"
	"github.com/kobzarvs/qhex/internal/memedit"
	"github.com/kobzarvs/qhex/internal/session"
	"github.com/kobzarvs/qhex/internal/store"
)

// App is the top-level runtime for qhex.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	runtime.LockOSThread()

	var path string
	readOnly := false
	debug := false
	for _, arg := range a.args {
		switch arg {
		case "--readonly", "-r":
			readOnly = true
		case "--debug":
			debug = true
		default:
			path = arg
		}
	}
	if path == "" {
		return errors.New("usage: qhex [--readonly] [--debug] <file>")
	}

	if err := logger.Init(debug); err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	f, err := store.Open(path, readOnly)
	if err != nil {
		return err
	}
	logger.Info("opened store", "path", path, "size", f.Len(), "readonly", f.ReadOnly())

	ranges, err := buildRanges(cfg, f)
	if err != nil {
		return err
	}

	opts := memedit.Options{
		Ranges:      ranges,
		Read:        store.Read,
		BytesPerRow: cfg.Editor.Columns,
		Preview:     previewFromConfig(cfg.Preview),
	}
	if !f.ReadOnly() {
		opts.Write = store.Write
	}
	ed, err := memedit.New(opts)
	if err != nil {
		return err
	}

	sessions, err := session.NewManager()
	if err != nil {
		logger.Warn("session manager unavailable", "error", err)
		sessions = nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if sessions != nil {
		if state, ok := sessions.GetFileState(absPath); ok {
			ed.RestoreView(state.Region, state.Viewport, state.SelectionStart, state.SelectionEnd, state.SelectionActive)
			logger.Debug("restored view", "region", state.Region, "viewport", state.Viewport)
		}
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	defer s.Fini()

	h := newHost(cfg, ed, f)
	h.resize(s)

	model := ed.Dispatch(f, nil)
	h.render(s, model)
	for {
		ev := s.PollEvent()
		events, quit := h.translate(ev, s)
		if quit {
			break
		}
		model = ed.Dispatch(f, events)
		h.render(s, model)
	}

	if sessions != nil {
		state := session.FileState{
			Region:   model.Region,
			Viewport: ed.Viewport(),
		}
		if lo, hi, ok := ed.Selection(); ok {
			state.SelectionActive = true
			state.SelectionStart = lo
			state.SelectionEnd = hi
		}
		sessions.SetFileState(absPath, state)
		sessions.Stop()
	}
	logger.Info("exiting", "dirty", f.Dirty())
	return nil
}

// buildRanges assembles the region list: the whole file first, then any
// extra regions from the configuration.
func buildRanges(cfg config.Config, f *store.File) ([]memedit.AddressRange, error) {
	ranges := []memedit.AddressRange{{Name: "All", Start: 0, End: f.Len()}}
	for _, reg := range cfg.Regions {
		start, err := parseAddr(reg.Start)
		if err != nil {
			return nil, &memedit.ConfigError{Reason: "region " + reg.Name + ": bad start " + reg.Start}
		}
		end, err := parseAddr(reg.End)
		if err != nil {
			return nil, &memedit.ConfigError{Reason: "region " + reg.Name + ": bad end " + reg.End}
		}
		ranges = append(ranges, memedit.AddressRange{Name: reg.Name, Start: start, End: end})
	}
	return ranges, nil
}

func previewFromConfig(p config.PreviewOptions) memedit.PreviewOptions {
	opts := memedit.PreviewOptions{Width: p.Width, Endian: memedit.Little, Signed: p.Signed}
	if p.Endianness == "big" {
		opts.Endian = memedit.Big
	}
	switch opts.Width {
	case 1, 2, 4, 8:
	default:
		opts.Width = 4
	}
	return opts
}
