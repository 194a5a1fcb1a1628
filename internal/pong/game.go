// Package pong simulates a two-paddle ball game in which the left paddle
// is steered by a precomputed policy table and the right paddle by the
// player. The game has no terminal state; callers decide when to stop.
package pong

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/policy"
)

// Input is the player's vertical intent for one tick.
type Input int

const (
	Up   Input = -1
	Idle Input = 0
	Down Input = 1
)

type Game struct {
	cfg    Config
	policy *policy.Table
	rng    *rand.Rand
	world  World
}

// NewGame validates the policy against the configured bins and serves the
// first ball. A nil source seeds one from the clock.
func NewGame(cfg Config, table *policy.Table, src rand.Source) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, &policy.LoadError{Err: fmt.Errorf("no policy table supplied")}
	}
	if err := table.Validate(cfg.Bins()); err != nil {
		return nil, err
	}
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}

	paddleY := cfg.Height/2 - cfg.PaddleHeight/2
	g := &Game{
		cfg:    cfg,
		policy: table,
		rng:    rand.New(src),
		world: World{
			Player:   Rect{X: cfg.Width - cfg.PlayerOffset, Y: paddleY, W: cfg.PaddleWidth, H: cfg.PaddleHeight},
			Opponent: Rect{X: cfg.OpponentOffset, Y: paddleY, W: cfg.PaddleWidth, H: cfg.PaddleHeight},
			Ball:     Rect{W: cfg.BallSize, H: cfg.BallSize},
		},
	}
	g.serve()
	return g, nil
}

func (g *Game) Config() Config { return g.cfg }

func (g *Game) World() World { return g.world }

func (g *Game) Score() (player, opponent int) {
	return g.world.PlayerScore, g.world.OpponentScore
}

// SetWorld replaces the world, e.g. to script a situation. Scores must not
// be negative.
func (g *Game) SetWorld(w World) error {
	if w.PlayerScore < 0 || w.OpponentScore < 0 {
		return fmt.Errorf("%w: negative score", dynamo.ErrInvalidState)
	}
	g.world = w
	return nil
}

// StateKey discretizes the current world for policy lookup.
func (g *Game) StateKey() policy.Key {
	w, c := g.world, g.cfg
	return policy.Key{
		Paddle: Discretize(float64(w.Opponent.Y), float64(c.Height), c.PaddleBins),
		BallX:  Discretize(float64(w.Ball.X), float64(c.Width), c.BallXBins),
		BallY:  Discretize(float64(w.Ball.Y), float64(c.Height), c.BallYBins),
		DX:     sign(w.DX),
		DY:     sign(w.DY),
	}
}

// Tick advances the game by one frame and returns the new world.
func (g *Game) Tick(in Input) World {
	c := g.cfg
	w := &g.world
	maxY := c.Height - c.PaddleHeight

	switch {
	case in < 0:
		w.Player.Y = clampInt(w.Player.Y-c.PaddleSpeed, 0, maxY)
	case in > 0:
		w.Player.Y = clampInt(w.Player.Y+c.PaddleSpeed, 0, maxY)
	}

	switch g.policy.ActionFor(g.StateKey()) {
	case policy.MoveUp:
		w.Opponent.Y = clampInt(w.Opponent.Y-c.OpponentSpeed, 0, maxY)
	case policy.MoveDown:
		w.Opponent.Y = clampInt(w.Opponent.Y+c.OpponentSpeed, 0, maxY)
	}

	w.Ball.X += w.DX
	w.Ball.Y += w.DY

	if w.Ball.Top() <= 0 || w.Ball.Bottom() >= c.Height {
		w.DY = -w.DY
	}
	if w.Ball.Overlaps(w.Player) || w.Ball.Overlaps(w.Opponent) {
		w.DX = -w.DX
	}

	// a serve overrides any paddle bounce from this tick
	if w.Ball.Left() <= 0 {
		w.PlayerScore++
		g.serve()
	} else if w.Ball.Right() >= c.Width {
		w.OpponentScore++
		g.serve()
	}
	return g.world
}

func (g *Game) serve() {
	w := &g.world
	w.Ball.X, w.Ball.Y = g.cfg.Width/2, g.cfg.Height/2
	w.DX = g.cfg.BallSpeed * g.randomSign()
	w.DY = g.cfg.BallSpeed * g.randomSign()
}

func (g *Game) randomSign() int {
	if g.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
