package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wordbattle/internal/entity"
)

// Layout constants for the battle screen.
const (
	// cellWidth is the horizontal space per combatant.
	cellWidth = 8
	// logLines is how many recent events the battle screen shows.
	logLines = 6
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderMenu draws the title screen.
func (r *Renderer) RenderMenu(v MenuView) {
	r.screen.Clear()

	titleStyle := tcell.StyleDefault.Foreground(colorTitle).Bold(true)
	r.screen.DrawCentered(2, "W O R D   B A T T L E", titleStyle)
	r.screen.DrawCentered(4, "Spell a five letter word. Its letters fight for you.", tcell.StyleDefault)

	if v.HasHistory {
		r.screen.DrawCentered(6, fmt.Sprintf("Wins %d  Losses %d  Best level %d", v.Wins, v.Losses, v.BestLevel),
			tcell.StyleDefault.Foreground(colorMissing))
	}

	r.screen.DrawCentered(8, "[Enter] play   [q] quit", tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.screen.Show()
}

// RenderWordEntry draws the word input screen.
func (r *Renderer) RenderWordEntry(v WordEntryView) {
	r.screen.Clear()
	r.drawHUD(v.HUD)

	if v.Milestone {
		r.screen.DrawCentered(2, fmt.Sprintf("Level %d reached!", v.Level), tcell.StyleDefault.Foreground(colorTitle).Bold(true))
	}

	r.screen.DrawCentered(4, "Choose your word", tcell.StyleDefault)

	slots := make([]rune, entity.WordLength)
	for i := range slots {
		slots[i] = '_'
	}
	for i, ch := range strings.ToUpper(v.Input) {
		if i < len(slots) {
			slots[i] = ch
		}
	}
	r.screen.DrawCentered(6, spaced(string(slots)), tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	costStyle := tcell.StyleDefault.Foreground(colorHealth)
	if !v.Affording {
		costStyle = tcell.StyleDefault.Foreground(colorWarning)
	}
	r.screen.DrawCentered(8, fmt.Sprintf("Cost: %d", v.Cost), costStyle)

	if v.Message != "" {
		r.screen.DrawCentered(10, v.Message, tcell.StyleDefault.Foreground(colorWarning).Bold(true))
	}

	r.screen.DrawCentered(12, "[Enter] fight   [Backspace] erase   [Esc] menu", tcell.StyleDefault.Foreground(colorMissing))
	r.screen.Show()
}

// RenderBattle draws both teams, their health bars and the recent event log.
func (r *Renderer) RenderBattle(v BattleView) {
	r.screen.Clear()
	r.drawHUD(v.HUD)

	opponentLabel, playerLabel := "Opponent", "You"
	if v.PlayerAttacking {
		playerLabel += " (attacking)"
	} else {
		opponentLabel += " (attacking)"
	}

	r.screen.DrawText(2, 2, opponentLabel, tcell.StyleDefault.Foreground(colorMissing))
	r.drawTeam(2, 3, v.Opponent)
	r.screen.DrawText(2, 8, playerLabel, tcell.StyleDefault.Foreground(colorMissing))
	r.drawTeam(2, 9, v.Player)

	r.screen.DrawText(2, 13, fmt.Sprintf("Turn %d", v.Turn+1), tcell.StyleDefault)

	log := v.Log
	if len(log) > logLines {
		log = log[len(log)-logLines:]
	}
	for i, line := range log {
		style := tcell.StyleDefault.Foreground(colorMissing)
		if i == len(log)-1 {
			style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
		}
		r.screen.DrawText(2, 15+i, line, style)
	}

	if v.Footer != "" {
		_, h := r.screen.Size()
		r.screen.DrawText(2, h-1, v.Footer, tcell.StyleDefault.Foreground(colorTitle))
	}
	r.screen.Show()
}

// RenderGameOver draws the end of a run.
func (r *Renderer) RenderGameOver(v GameOverView) {
	r.screen.Clear()
	r.screen.DrawCentered(3, "GAME OVER", tcell.StyleDefault.Foreground(colorWarning).Bold(true))
	r.screen.DrawCentered(5, fmt.Sprintf("%s fell to %s", strings.ToUpper(v.PlayerWord), strings.ToUpper(v.OpponentWord)),
		tcell.StyleDefault)
	r.screen.DrawCentered(6, fmt.Sprintf("You reached level %d", v.Level), tcell.StyleDefault)
	r.screen.DrawCentered(8, "[Enter] new run   [q] quit", tcell.StyleDefault.Foreground(colorMissing))
	r.screen.Show()
}

// drawHUD draws gold and level on the top line.
func (r *Renderer) drawHUD(h HUD) {
	r.screen.DrawText(0, 0, fmt.Sprintf("Gold: %d", h.Gold), tcell.StyleDefault.Foreground(colorShield))
	level := fmt.Sprintf("Level: %d", h.Level)
	w, _ := r.screen.Size()
	r.screen.DrawText(w-len(level), 0, level, tcell.StyleDefault.Foreground(tcell.ColorWhite))
}

// drawTeam draws one row of combatants: letter, health bar, health/damage.
func (r *Renderer) drawTeam(x, y int, team *entity.Team) {
	if team == nil {
		return
	}
	for i, c := range team.Combatants {
		cx := x + i*cellWidth
		letterStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
		if !c.IsAlive() {
			letterStyle = tcell.StyleDefault.Foreground(colorMissing)
		}
		r.screen.SetContent(cx, y, []rune(strings.ToUpper(c.Letter()))[0], letterStyle)
		if c.Shielded {
			r.screen.SetContent(cx+1, y, '◆', tcell.StyleDefault.Foreground(colorShield))
		}
		if !c.IsAlive() {
			r.screen.SetContent(cx+1, y, 'x', letterStyle)
		}
		r.drawHealthBar(cx, y+1, c)
		r.screen.DrawText(cx, y+2, fmt.Sprintf("%d/%d", c.Health, c.Def.Damage), tcell.StyleDefault.Foreground(colorMissing))
	}
}

// drawHealthBar draws real health green, temporary health cyan and missing
// health gray.
func (r *Renderer) drawHealthBar(x, y int, c *entity.Combatant) {
	col := x
	for i := 0; i < c.Health; i++ {
		r.screen.SetContent(col, y, '█', tcell.StyleDefault.Foreground(colorHealth))
		col++
	}
	for i := 0; i < c.TempHealth; i++ {
		r.screen.SetContent(col, y, '█', tcell.StyleDefault.Foreground(colorTemp))
		col++
	}
	for i := c.Health; i < c.MaxHealth; i++ {
		r.screen.SetContent(col, y, '░', tcell.StyleDefault.Foreground(colorMissing))
		col++
	}
}

func spaced(s string) string {
	return strings.Join(strings.Split(s, ""), " ")
}
