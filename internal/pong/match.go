package pong

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Point records who scored on which tick.
type Point struct {
	Tick   int
	Player bool
}

type MatchResult struct {
	Ticks         int
	PlayerScore   int
	OpponentScore int
	Points        []Point
}

func (r MatchResult) String() string {
	return fmt.Sprintf("player %d : %d opponent after %d ticks", r.PlayerScore, r.OpponentScore, r.Ticks)
}

// Match drives the game headless for up to ticks frames, or until ctx is
// done. The partial result is returned together with ctx.Err().
func Match(ctx context.Context, g *Game, p Player, ticks int, logger *log.Logger) (MatchResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var res MatchResult
	ps, ops := g.Score()

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			res.PlayerScore, res.OpponentScore = ps, ops
			return res, ctx.Err()
		default:
		}

		w := g.Tick(p.Input(g.World()))
		res.Ticks++

		if w.PlayerScore != ps || w.OpponentScore != ops {
			pt := Point{Tick: i, Player: w.PlayerScore != ps}
			res.Points = append(res.Points, pt)
			logger.Debug("point", "tick", i, "player", w.PlayerScore, "opponent", w.OpponentScore)
		}
		ps, ops = w.PlayerScore, w.OpponentScore
	}

	res.PlayerScore, res.OpponentScore = ps, ops
	logger.Info("match finished", "ticks", res.Ticks, "player", ps, "opponent", ops)
	return res, nil
}
