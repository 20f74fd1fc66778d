package autoplay

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-autopilot/internal/config"
	"github.com/vovakirdan/snake-autopilot/internal/core"
	"github.com/vovakirdan/snake-autopilot/internal/grid"
	"github.com/vovakirdan/snake-autopilot/internal/planner"
	"github.com/vovakirdan/snake-autopilot/internal/registry"
)

// Preset describes a registered autopilot game.
type Preset struct {
	ID     string
	Title  string
	Size   config.Preset
	Walled bool
}

// Presets lists the games registered by this package.
var Presets = []Preset{
	{ID: "autopilot", Title: "Autopilot", Size: config.PresetSmall},
	{ID: "autopilot_walled", Title: "Autopilot (Walled)", Size: config.PresetSmall, Walled: true},
	{ID: "autopilot_large", Title: "Autopilot (Large)", Size: config.PresetLarge},
}

// Package-level settings shared by every game created through the registry
var (
	baseConfig = config.DefaultConfig()
	logger     = log.Default()
)

// SetConfig replaces the configuration presets are derived from.
func SetConfig(cfg config.Config) {
	baseConfig = cfg
}

// SetLogger sets the logger used by games and runs.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	for _, p := range Presets {
		registry.Register(p.ID, func() registry.Game {
			return New(p)
		})
	}
}

// ConfigFor returns the base configuration adjusted for the preset.
func ConfigFor(p Preset) (config.Config, error) {
	cfg := baseConfig
	cfg.Snake.Start = append([]config.CellConfig(nil), baseConfig.Snake.Start...)
	if err := config.ApplyPreset(&cfg, p.Size); err != nil {
		return cfg, err
	}
	if p.Walled {
		cfg.Board.Walled = true
	}
	return cfg, cfg.Validate()
}

// FindPreset looks up a registered preset by ID.
func FindPreset(id string) (Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// Game lets the planner play snake, one move every few ticks.
type Game struct {
	preset Preset
	cfg    config.Config
	rng    *rand.Rand
	err    error

	board    *Board
	queue    []grid.Move
	strategy planner.Strategy

	pre *Precomputer

	mu     sync.Mutex // Guards cancel, which Close reads from other goroutines
	cancel context.CancelFunc

	tick           uint64
	moveEveryTicks int
	moveTicker     int
	paused         bool
}

// New creates a game for the preset. Nothing runs until Reset.
func New(p Preset) *Game {
	return &Game{preset: p}
}

// ID returns the preset identifier.
func (g *Game) ID() string { return g.preset.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.preset.Title }

// Reset starts a new game. Any precompute goroutine from the previous game
// is stopped.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.Close()
	g.pre = nil

	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.moveTicker = 0
	g.paused = false
	g.queue = nil
	g.strategy = planner.StrategyFood
	g.board = nil

	cfg, err := ConfigFor(g.preset)
	if err != nil {
		g.fail(err)
		return
	}
	st, err := cfg.StartState()
	if err != nil {
		g.fail(err)
		return
	}

	g.cfg = cfg
	g.err = nil
	// The precomputer spawns food from the same seed, so its virtual game
	// is the one played here
	seed := g.rng.Int63()
	g.board = NewBoard(st, seed)
	if cfg.Play.Precompute {
		ctx, cancel := context.WithCancel(context.Background())
		g.mu.Lock()
		g.cancel = cancel
		g.mu.Unlock()
		g.pre = NewPrecomputer(st, seed, cfg.Play.Lookahead, logger)
		g.pre.Start(ctx)
	}
	g.moveEveryTicks = g.cfg.Play.MoveEveryTicks
}

func (g *Game) fail(err error) {
	g.err = err
	logger.Error("cannot start game", "preset", g.preset.ID, "err", err)
}

// Close stops background planning. It may be called from another goroutine;
// moves already planned are still played and the rest is planned live.
func (g *Game) Close() {
	g.mu.Lock()
	cancel := g.cancel
	g.cancel = nil
	g.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.board == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{Seed: g.rng.Int63()})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionFaster) {
		g.moveEveryTicks = core.Clamp(g.moveEveryTicks-1, 1, 30)
	}
	if in.Has(core.ActionSlower) {
		g.moveEveryTicks = core.Clamp(g.moveEveryTicks+1, 1, 30)
	}

	if g.paused || g.board.Outcome() != OutcomeRunning {
		return core.StepResult{State: g.State()}
	}

	g.moveTicker++
	if g.moveTicker >= g.moveEveryTicks {
		g.moveTicker = 0
		g.advance()
	}

	if g.board.Outcome() != OutcomeRunning {
		g.Close()
	}
	return core.StepResult{State: g.State()}
}

// advance makes one move, refilling the move queue first if needed.
func (g *Game) advance() {
	if len(g.queue) == 0 && !g.refill() {
		return
	}
	m := g.queue[0]
	g.queue = g.queue[1:]
	g.board.Step(m)
}

// refill queues the next planned moves. It reports false when nothing could
// be queued this tick.
func (g *Game) refill() bool {
	if g.pre != nil {
		seg, ok := g.pre.Next()
		if ok {
			if seg.HasFood {
				g.board.SetFood(seg.Food)
			}
			g.setStrategy(seg.Strategy)
			g.queue = seg.Path
			return len(g.queue) > 0
		}
		if !g.pre.Done() {
			// Producer is behind; wait for the next tick
			return false
		}
		g.pre = nil
	}

	d, err := planner.Decide(g.board.State())
	if err != nil {
		logger.Error("planner failed", "preset", g.preset.ID, "err", err)
		return false
	}
	g.setStrategy(d.Strategy)
	g.queue = d.Path
	return true
}

func (g *Game) setStrategy(s planner.Strategy) {
	if s != g.strategy {
		logger.Debug("strategy switch", "preset", g.preset.ID, "from", g.strategy, "to", s, "moves", g.board.Moves())
	}
	g.strategy = s
}

// Strategy returns the strategy behind the moves currently being played.
func (g *Game) Strategy() planner.Strategy { return g.strategy }

// Outcome returns the game outcome.
func (g *Game) Outcome() Outcome {
	if g.board == nil {
		return OutcomeDead
	}
	return g.board.Outcome()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.board == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    g.board.Score(),
		Length:   g.board.Length(),
		Moves:    g.board.Moves(),
		GameOver: g.board.Outcome() != OutcomeRunning,
		Paused:   g.paused,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.board == nil {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Cannot start: %v", g.err), core.ColorRed)
		return
	}

	st := g.board.State()
	hud := fmt.Sprintf(" %s  Score: %d  Length: %d  Moves: %d  Plan: %s",
		g.preset.Title, g.board.Score(), g.board.Length(), g.board.Moves(), g.strategy)
	dst.DrawText(0, 0, hud, core.ColorCyan)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}

	// Two columns per cell keeps the board roughly square
	boardW, boardH := st.Grid.Width*2+2, st.Grid.Height+2
	if boardW > dst.Width() || boardH+2 > dst.Height() {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}
	area := core.NewRect(0, 2, dst.Width(), dst.Height()-2).Centered(boardW, boardH)

	edge := core.ColorGray
	if st.Grid.Walled {
		edge = core.ColorDefault
	}
	dst.DrawBox(area, edge)

	put := func(c grid.Cell, r rune, col core.Color) {
		x, y := area.X+1+c.X*2, area.Y+1+c.Y
		dst.SetColor(x, y, r, col)
		dst.SetColor(x+1, y, r, col)
	}

	if st.HasFood {
		put(st.Food, '●', core.ColorRed)
	}
	for i, c := range st.Body {
		if i == len(st.Body)-1 {
			put(c, '█', core.ColorBrightGreen)
		} else {
			put(c, '▓', core.ColorGreen)
		}
	}

	switch {
	case g.board.Outcome() == OutcomeFull:
		g.renderOverlay(dst, "Board filled!", fmt.Sprintf("Score: %d  Press R to restart", g.board.Score()))
	case g.board.Outcome() == OutcomeDead:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  Press R to restart", g.board.Score()))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(w, 5)
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorYellow)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
