package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"roguemind/internal/gamemap"
)

// Status is the player's line of the HUD.
type Status struct {
	HP, MaxHP int
	Stance    string
	Running   bool
	Level     string
	Weather   gamemap.Weather
}

func (s Status) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "HP: %d/%d  Stance: %s", s.HP, s.MaxHP, s.Stance)
	if s.Running {
		b.WriteString("  [run]")
	}
	fmt.Fprintf(&b, "  %s", s.Level)
	if s.Weather.Active {
		fmt.Fprintf(&b, "  %s %s %d°", WeatherGlyph(s.Weather.Kind), s.Weather.Kind, s.Weather.Temperature)
	}
	return b.String()
}

// Panel is an open menu drawn over the top-left of the map.
type Panel struct {
	Title string
	Lines []string
}

// DrawHUD renders the status bar, the message log and any pending prompt at
// the bottom of the screen, then the panel, and shows the frame.
func (r *Renderer) DrawHUD(st Status, messages []string, prompt string, panel *Panel) {
	_, screenH := r.screen.Size()
	hudY := screenH - HUDRows

	r.drawHLine(hudY, tcell.ColorGray)
	r.drawText(0, hudY+1, st.String(), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	logRows := HUDRows - 2
	if prompt != "" {
		logRows--
	}
	start := max(len(messages)-logRows, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
	if prompt != "" {
		r.drawText(0, screenH-1, prompt+" (y/n)", tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true))
	}

	if panel != nil {
		r.drawPanel(*panel)
	}
	r.screen.Show()
}

func (r *Renderer) drawPanel(p Panel) {
	width := runewidth.StringWidth(p.Title)
	for _, l := range p.Lines {
		width = max(width, runewidth.StringWidth(l))
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	rows := append([]string{p.Title}, p.Lines...)
	for i, line := range rows {
		r.drawText(1, 1+i, line+strings.Repeat(" ", width-runewidth.StringWidth(line)+1), style)
	}
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
