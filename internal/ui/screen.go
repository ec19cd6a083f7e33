// Package ui provides terminal rendering using tcell.
package ui

import "github.com/gdamore/tcell/v2"

// Screen wraps tcell.Screen with a simplified interface.
type Screen struct {
	screen tcell.Screen
}

// NewScreen creates and initializes a new terminal screen.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return initScreen(s)
}

// NewSimulationScreen creates an in-memory screen for tests and headless use.
func NewSimulationScreen(width, height int) (*Screen, error) {
	s := tcell.NewSimulationScreen("UTF-8")
	screen, err := initScreen(s)
	if err != nil {
		return nil, err
	}
	s.SetSize(width, height)
	return screen, nil
}

func initScreen(s tcell.Screen) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.Clear()
	return &Screen{screen: s}, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// PollEvent waits for and returns the next terminal event.
func (s *Screen) PollEvent() tcell.Event {
	return s.screen.PollEvent()
}

// PostEvent queues an event for PollEvent. It is safe to call from other
// goroutines.
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.screen.PostEvent(ev)
}

// Clear clears the screen buffer.
func (s *Screen) Clear() {
	s.screen.Clear()
}

// Show flushes the screen buffer to the terminal.
func (s *Screen) Show() {
	s.screen.Show()
}

// SetContent sets a single cell's content at the given position.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.screen.SetContent(x, y, r, nil, style)
}

// DrawText writes text starting at (x, y), one rune per cell. Cells past the
// right edge are dropped.
func (s *Screen) DrawText(x, y int, text string, style tcell.Style) {
	w, _ := s.Size()
	for i, r := range []rune(text) {
		if x+i >= w {
			return
		}
		s.screen.SetContent(x+i, y, r, nil, style)
	}
}

// DrawCentered writes text centered on row y.
func (s *Screen) DrawCentered(y int, text string, style tcell.Style) {
	w, _ := s.Size()
	x := (w - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	s.DrawText(x, y, text, style)
}

// Size returns the current terminal dimensions.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Sync forces a complete redraw of the screen.
func (s *Screen) Sync() {
	s.screen.Sync()
}
