package game

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wordbattle/internal/entity"
	"github.com/samdwyer/wordbattle/internal/gamedata"
	"github.com/samdwyer/wordbattle/internal/storage"
	"github.com/samdwyer/wordbattle/internal/telemetry"
	"github.com/samdwyer/wordbattle/internal/ui"
	"github.com/samdwyer/wordbattle/internal/words"
)

// Deps are the loaded collaborators a game needs.
type Deps struct {
	Catalog    *gamedata.Catalog
	Dictionary *words.Dictionary
	History    storage.Store // Optional
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer

	catalog *gamedata.Catalog
	dict    *words.Dictionary
	history storage.Store

	progress     *Progress
	rng          *rand.Rand
	pickOpponent func() string

	state   State
	running bool

	input     string
	message   string
	milestone bool
	playback  *playback
	lost      *playback
	summary   storage.Summary
}

// New creates a new game instance on the terminal.
func New(cfg Config, deps Deps) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newGame(cfg, deps, screen)
}

func newGame(cfg Config, deps Deps, screen *ui.Screen) (*Game, error) {
	if deps.Catalog == nil || deps.Dictionary == nil {
		return nil, fmt.Errorf("catalog and dictionary are required")
	}

	g := &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		catalog:  deps.Catalog,
		dict:     deps.Dictionary,
		history:  deps.History,
		progress: NewProgress(deps.Catalog, cfg.StartingGold),
		rng:      rand.New(rand.NewSource(cfg.ResolvedSeed())),
		state:    StateMenu,
		running:  true,
	}
	g.pickOpponent = func() string { return g.dict.Random(g.rng) }
	return g, nil
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")

	ctx, initSpan := tracer.Start(ctx, "game.init")
	initSpan.SetAttributes(
		attribute.Int("catalog.letters", g.catalog.Count()),
		attribute.Int("dictionary.words", g.dict.Count()),
		attribute.Int("progress.gold", g.progress.Gold),
		attribute.Bool("history.enabled", g.history != nil),
	)
	g.refreshSummary(ctx)
	initSpan.End()

	// Main game loop
	for g.running {
		g.render()
		g.handleEvent(ctx, g.screen.PollEvent())
	}

	g.stopPlayback()
	return nil
}

// render draws the screen for the current state.
func (g *Game) render() {
	hud := ui.HUD{Gold: g.progress.Gold, Level: g.progress.Level}

	switch g.state {
	case StateMenu:
		g.renderer.RenderMenu(ui.MenuView{
			Wins:       g.summary.Wins,
			Losses:     g.summary.Losses,
			BestLevel:  g.summary.BestLevel,
			HasHistory: g.history != nil,
		})
	case StateWordEntry:
		g.renderer.RenderWordEntry(ui.WordEntryView{
			HUD:       hud,
			Input:     g.input,
			Cost:      g.progress.WordCost(g.input),
			Affording: g.progress.CanAfford(g.input),
			Message:   g.message,
			Milestone: g.milestone,
		})
	case StateBattle:
		g.renderer.RenderBattle(g.playback.view(hud))
	case StateGameOver:
		v := ui.GameOverView{Level: g.progress.Level}
		if g.lost != nil {
			v.PlayerWord, v.OpponentWord = g.lost.playerWord, g.lost.opponentWord
		}
		g.renderer.RenderGameOver(v)
	}
}

// handleEvent processes a single screen event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventInterrupt:
		if tick, ok := ev.Data().(stepTick); ok {
			g.handleTick(ctx, tick)
		}
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}

	switch g.state {
	case StateMenu:
		g.handleMenuKey(ev)
	case StateWordEntry:
		g.handleWordEntryKey(ctx, ev)
	case StateBattle:
		g.handleBattleKey(ctx, ev)
	case StateGameOver:
		g.handleGameOverKey(ev)
	}
}

func (g *Game) handleMenuKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		g.enterWordEntry()
	case tcell.KeyEscape:
		g.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		}
	}
}

func (g *Game) handleWordEntryKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.state = StateMenu
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.input) > 0 {
			g.input = g.input[:len(g.input)-1]
		}
		g.message = ""
	case tcell.KeyEnter:
		g.submitWord(ctx)
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r >= 'a' && r <= 'z' && len(g.input) < entity.WordLength {
			g.input += string(r)
			g.message = ""
		}
	}
}

func (g *Game) handleGameOverKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEnter:
		g.progress.Reset()
		g.lost = nil
		g.enterWordEntry()
	case tcell.KeyEscape:
		g.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		}
	}
}

// enterWordEntry clears the input and shows word entry.
func (g *Game) enterWordEntry() {
	g.input = ""
	g.message = ""
	g.state = StateWordEntry
}

// submitWord pays for the typed word and starts a battle against a random
// dictionary word.
func (g *Game) submitWord(ctx context.Context) {
	if err := g.progress.Spend(g.input, g.dict); err != nil {
		g.message = DisplayMessage(err)
		return
	}

	opponent := g.pickOpponent()
	if err := g.startBattle(ctx, g.input, opponent); err != nil {
		log.Printf("start battle: %v", err)
		g.progress.Gold += g.progress.WordCost(g.input)
		g.message = DisplayMessage(err)
		return
	}
	g.milestone = false
	g.message = ""
}

// refreshSummary reloads the menu statistics from history.
func (g *Game) refreshSummary(ctx context.Context) {
	if g.history == nil {
		return
	}
	summary, err := g.history.Summary(ctx)
	if err != nil {
		log.Printf("load history summary: %v", err)
		return
	}
	g.summary = summary
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.stopPlayback()
	if g.screen != nil {
		g.screen.Close()
	}
}
