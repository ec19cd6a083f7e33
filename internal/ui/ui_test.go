package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wordbattle/internal/entity"
	"github.com/samdwyer/wordbattle/internal/gamedata"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"3CB043", tcell.NewRGBColor(0x3C, 0xB0, 0x43), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMustParseHexColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseHexColor should panic on bad input")
		}
	}()
	MustParseHexColor("nope")
}

func newTestRenderer(t *testing.T) (*Renderer, *Screen) {
	t.Helper()
	screen, err := NewSimulationScreen(80, 24)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	t.Cleanup(screen.Close)
	return NewRenderer(screen), screen
}

func row(s *Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

func screenText(s *Screen) string {
	_, h := s.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = row(s, y)
	}
	return strings.Join(lines, "\n")
}

func TestRenderWordEntry(t *testing.T) {
	r, screen := newTestRenderer(t)

	r.RenderWordEntry(WordEntryView{
		HUD:     HUD{Gold: 10, Level: 3},
		Input:   "rat",
		Cost:    4,
		Message: "Not enough gold!",
	})

	text := screenText(screen)
	for _, want := range []string{"Gold: 10", "Level: 3", "R A T _ _", "Cost: 4", "Not enough gold!"} {
		if !strings.Contains(text, want) {
			t.Errorf("word entry screen missing %q", want)
		}
	}
}

func TestRenderBattleHealthBars(t *testing.T) {
	r, screen := newTestRenderer(t)
	catalog := gamedata.MustLoadCatalog()

	player, err := entity.BuildTeam("rates", catalog)
	if err != nil {
		t.Fatalf("BuildTeam() error = %v", err)
	}
	opponent, err := entity.BuildTeam("lemon", catalog)
	if err != nil {
		t.Fatalf("BuildTeam() error = %v", err)
	}
	player.Combatants[0].TakeDamage(1)
	player.Combatants[0].AddTemporaryHealth(1)
	opponent.Combatants[1].GrantShield()
	opponent.Combatants[4].TakeDamage(10)

	r.RenderBattle(BattleView{
		HUD:      HUD{Gold: 5, Level: 1},
		Player:   player,
		Opponent: opponent,
		Log:      []string{"player R hits L for 1"},
	})

	// Opponent row: L, E with shield, dead N.
	opponentRow := row(screen, 3)
	if opponentRow[2] != 'L' {
		t.Errorf("opponent row = %q, want L at column 2", opponentRow)
	}
	if got, _, _, _ := screen.screen.GetContent(2+cellWidth+1, 3); got != '◆' {
		t.Errorf("shield marker = %q, want ◆", got)
	}
	if got, _, _, _ := screen.screen.GetContent(2+4*cellWidth+1, 3); got != 'x' {
		t.Errorf("dead marker = %q, want x", got)
	}

	// R has 2 real, 1 temp, 1 missing.
	want := []struct {
		r     rune
		color tcell.Color
	}{
		{'█', colorHealth},
		{'█', colorHealth},
		{'█', colorTemp},
		{'░', colorMissing},
	}
	for i, w := range want {
		got, _, style, _ := screen.screen.GetContent(2+i, 10)
		fg, _, _ := style.Decompose()
		if got != w.r || fg != w.color {
			t.Errorf("bar cell %d = %q/%v, want %q/%v", i, got, fg, w.r, w.color)
		}
	}

	if !strings.Contains(screenText(screen), "player R hits L for 1") {
		t.Error("battle screen missing event log line")
	}
}

func TestRenderGameOver(t *testing.T) {
	r, screen := newTestRenderer(t)

	r.RenderGameOver(GameOverView{Level: 4, PlayerWord: "rates", OpponentWord: "lemon"})

	text := screenText(screen)
	for _, want := range []string{"GAME OVER", "RATES fell to LEMON", "level 4"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}

func TestDrawTextClipsAtEdge(t *testing.T) {
	screen, err := NewSimulationScreen(10, 2)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	defer screen.Close()

	screen.DrawText(6, 0, "battle", tcell.StyleDefault)
	if got := row(screen, 0); got != "      batt" {
		t.Errorf("row 0 = %q, want %q", got, "      batt")
	}

	screen.DrawCentered(1, "ab", tcell.StyleDefault)
	if got := row(screen, 1); got != "    ab    " {
		t.Errorf("row 1 = %q, want %q", got, "    ab    ")
	}
}
