package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qhex/internal/config"
	"github.com/kobzarvs/qhex/internal/memedit"
)

type styles struct {
	main        tcell.Style
	address     tcell.Style
	zero        tcell.Style
	ascii       tcell.Style
	selection   tcell.Style
	edit        tcell.Style
	editInvalid tcell.Style
	status      tcell.Style
	prompt      tcell.Style
}

func newStyles(theme config.Theme) styles {
	mainFg := parseColor(theme.Foreground, tcell.ColorWhite)
	mainBg := parseColor(theme.Background, tcell.ColorBlack)
	addressFg := parseColor(theme.AddressForeground, tcell.ColorGray)
	zeroFg := parseColor(theme.ZeroForeground, tcell.ColorGray)
	asciiFg := parseColor(theme.ASCIIForeground, mainFg)
	selectionFg := parseColor(theme.SelectionForeground, mainFg)
	selectionBg := parseColor(theme.SelectionBackground, mainBg)
	editFg := parseColor(theme.EditForeground, mainBg)
	editBg := parseColor(theme.EditBackground, tcell.ColorYellow)
	editInvalidBg := parseColor(theme.EditInvalidBackground, tcell.ColorRed)
	statusFg := parseColor(theme.StatuslineForeground, tcell.ColorBlack)
	statusBg := parseColor(theme.StatuslineBackground, tcell.ColorGray)
	promptFg := parseColor(theme.PromptForeground, statusFg)
	promptBg := parseColor(theme.PromptBackground, statusBg)
	return styles{
		main:        tcell.StyleDefault.Foreground(mainFg).Background(mainBg),
		address:     tcell.StyleDefault.Foreground(addressFg).Background(mainBg),
		zero:        tcell.StyleDefault.Foreground(zeroFg).Background(mainBg),
		ascii:       tcell.StyleDefault.Foreground(asciiFg).Background(mainBg),
		selection:   tcell.StyleDefault.Foreground(selectionFg).Background(selectionBg),
		edit:        tcell.StyleDefault.Foreground(editFg).Background(editBg),
		editInvalid: tcell.StyleDefault.Foreground(editFg).Background(editInvalidBg),
		status:      tcell.StyleDefault.Foreground(statusFg).Background(statusBg),
		prompt:      tcell.StyleDefault.Foreground(promptFg).Background(promptBg),
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// render paints the model: the hex grid with the ASCII sidebar, then the
// statusline and the prompt line on the bottom two screen rows.
func (h *host) render(s tcell.Screen, m memedit.RenderModel) {
	h.model = m
	w, height := s.Size()
	if w <= 0 || height <= 0 {
		return
	}
	s.Clear()

	digits := addressDigits(h.ed.ActiveRegion())
	gutter := h.gutterWidth()
	viewRows := height - 2
	if viewRows < 0 {
		viewRows = 0
	}

	for y := 0; y < viewRows && y < len(m.Rows); y++ {
		row := m.Rows[y]
		drawText(s, 0, y, h.styles.address, fmt.Sprintf("%0*X:", digits, row.Addr))
		for i, c := range row.Cells {
			x := gutter + cellOffset(i)
			st := h.cellStyle(m, c)
			if m.Edit.Active && c.Addr == m.Edit.Addr {
				text := m.Edit.Text
				for len(text) < 2 {
					text += "_"
				}
				drawText(s, x, y, st, text)
				continue
			}
			if !c.Available {
				drawText(s, x, y, st, "--")
				continue
			}
			drawText(s, x, y, st, fmt.Sprintf("%02X", c.Value))
		}
		if h.showASCII {
			x := gutter + cellOffset(h.ed.BytesPerRow()) + 2
			for i, r := range row.ASCII {
				st := h.styles.ascii
				if m.SelActive && row.Cells[i].Addr >= m.SelStart && row.Cells[i].Addr <= m.SelEnd {
					st = h.styles.selection
				}
				drawText(s, x+i, y, st, string(r))
			}
		}
	}

	statusY := height - 2
	promptY := height - 1
	if height < 2 {
		statusY = height - 1
		promptY = height - 1
	}
	drawLine(s, statusY, w, h.styles.status, h.statusLine(m))
	drawLine(s, promptY, w, h.styles.prompt, h.promptLine(m))
	s.Show()
}

func (h *host) cellStyle(m memedit.RenderModel, c memedit.Cell) tcell.Style {
	if m.Edit.Active && c.Addr == m.Edit.Addr {
		if m.Edit.Valid {
			return h.styles.edit
		}
		return h.styles.editInvalid
	}
	if m.SelActive && c.Addr >= m.SelStart && c.Addr <= m.SelEnd {
		return h.styles.selection
	}
	if !c.Available || (h.dimZeros && c.Value == 0) {
		return h.styles.zero
	}
	return h.styles.main
}

func (h *host) statusLine(m memedit.RenderModel) string {
	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(h.st.Path())
	if h.st.Dirty() {
		b.WriteString(" [+]")
	}
	if !m.Writable {
		b.WriteString(" [ro]")
	}
	b.WriteString("  ")
	b.WriteString(m.Region)
	if len(m.Regions) > 1 {
		b.WriteString(fmt.Sprintf(" (%d/%d)", regionIndex(m)+1, len(m.Regions)))
	}
	if m.SelActive {
		if m.SelStart == m.SelEnd {
			b.WriteString(fmt.Sprintf("  sel 0x%X", m.SelStart))
		} else {
			b.WriteString(fmt.Sprintf("  sel 0x%X..0x%X", m.SelStart, m.SelEnd))
		}
	}
	if m.Preview.Active {
		p := h.ed.PreviewConfig()
		b.WriteString(fmt.Sprintf("  %s: %s %q", previewLabel(p), m.Preview.Text, m.Preview.ASCII))
	}
	return b.String()
}

func (h *host) promptLine(m memedit.RenderModel) string {
	if m.Notice != "" {
		return " " + m.Notice
	}
	if m.GotoActive {
		return " goto: " + m.GotoText
	}
	if h.status != "" {
		return " " + h.status
	}
	return ""
}

func regionIndex(m memedit.RenderModel) int {
	for i, name := range m.Regions {
		if name == m.Region {
			return i
		}
	}
	return 0
}

func previewLabel(p memedit.PreviewOptions) string {
	sign := "u"
	if p.Signed {
		sign = "i"
	}
	endian := "le"
	if p.Endian == memedit.Big {
		endian = "be"
	}
	return fmt.Sprintf("%s%d %s", sign, p.Width*8, endian)
}

func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, st)
	}
}

func drawLine(s tcell.Screen, y, w int, st tcell.Style, text string) {
	runes := []rune(text)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		s.SetContent(x, y, r, nil, st)
	}
}
