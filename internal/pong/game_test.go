package pong_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"

	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/policy"
	"github.com/san-kum/rlenv/internal/pong"
)

func mustTable(entries map[policy.Key]policy.Action) *policy.Table {
	t, err := policy.NewTable(entries)
	Expect(err).NotTo(HaveOccurred())
	return t
}

func newGame(t *policy.Table) *pong.Game {
	g, err := pong.NewGame(pong.DefaultConfig(), t, rand.NewSource(1))
	Expect(err).NotTo(HaveOccurred())
	return g
}

// scripted places the ball and keeps both paddles vertically centred.
func scripted(g *pong.Game, ball pong.Rect, dx, dy int) pong.World {
	w := g.World()
	w.Ball = ball
	w.DX, w.DY = dx, dy
	Expect(g.SetWorld(w)).To(Succeed())
	return w
}

var _ = Describe("Discretize", func() {
	It("matches the reference bins", func() {
		Expect(pong.Discretize(750, 800, 50)).To(Equal(46))
		Expect(pong.Discretize(-5, 600, 30)).To(Equal(0))
		Expect(pong.Discretize(600, 600, 30)).To(Equal(29))
	})

	It("saturates outside [0, max)", func() {
		Expect(pong.Discretize(0, 600, 30)).To(Equal(0))
		Expect(pong.Discretize(-1e9, 600, 30)).To(Equal(0))
		Expect(pong.Discretize(1e9, 600, 30)).To(Equal(29))
		Expect(pong.Discretize(601, 600, 30)).To(Equal(29))
	})

	It("is monotonic non-decreasing", func() {
		prev := pong.Discretize(-50, 800, 50)
		for v := -50.0; v <= 850; v += 0.5 {
			cur := pong.Discretize(v, 800, 50)
			Expect(cur).To(BeNumerically(">=", prev))
			Expect(cur).To(BeNumerically("<", 50))
			prev = cur
		}
	})
})

var _ = Describe("NewGame", func() {
	It("fails with ErrPolicyLoad without a table", func() {
		_, err := pong.NewGame(pong.DefaultConfig(), nil, rand.NewSource(1))
		Expect(errors.Is(err, dynamo.ErrPolicyLoad)).To(BeTrue())
	})

	It("fails with ErrPolicyLoad when the table uses bins the game does not have", func() {
		t := mustTable(map[policy.Key]policy.Action{{Paddle: 30, DX: 1, DY: 1}: policy.MoveUp})
		_, err := pong.NewGame(pong.DefaultConfig(), t, rand.NewSource(1))
		Expect(errors.Is(err, dynamo.ErrPolicyLoad)).To(BeTrue())
	})

	It("rejects an invalid configuration", func() {
		cfg := pong.DefaultConfig()
		cfg.PaddleHeight = 0
		_, err := pong.NewGame(cfg, mustTable(nil), rand.NewSource(1))
		Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
	})

	It("serves from the centre at ball speed", func() {
		g := newGame(mustTable(nil))
		w := g.World()
		Expect(w.Ball.X).To(Equal(400))
		Expect(w.Ball.Y).To(Equal(300))
		Expect(w.DX).To(Or(Equal(5), Equal(-5)))
		Expect(w.DY).To(Or(Equal(5), Equal(-5)))
		Expect(w.Player).To(Equal(pong.Rect{X: 780, Y: 250, W: 10, H: 100}))
		Expect(w.Opponent).To(Equal(pong.Rect{X: 10, Y: 250, W: 10, H: 100}))
		p, o := g.Score()
		Expect(p).To(BeZero())
		Expect(o).To(BeZero())
	})
})

var _ = Describe("Tick", func() {
	var g *pong.Game

	BeforeEach(func() {
		g = newGame(mustTable(nil))
	})

	It("reflects off the bottom wall without changing speed", func() {
		scripted(g, pong.Rect{X: 400, Y: 580, W: 15, H: 15}, 5, 5)
		w := g.Tick(pong.Idle)
		Expect(w.Ball.Y).To(Equal(585))
		Expect(w.DY).To(Equal(-5))
		Expect(w.DX).To(Equal(5))
	})

	It("reflects off the top wall", func() {
		scripted(g, pong.Rect{X: 400, Y: 4, W: 15, H: 15}, -5, -5)
		w := g.Tick(pong.Idle)
		Expect(w.DY).To(Equal(5))
	})

	It("reflects off the player paddle", func() {
		scripted(g, pong.Rect{X: 762, Y: 290, W: 15, H: 15}, 5, 5)
		w := g.Tick(pong.Idle)
		Expect(w.DX).To(Equal(-5))
		Expect(w.DY).To(Equal(5))
	})

	It("reflects on both axes in the same tick", func() {
		w := scripted(g, pong.Rect{X: 22, Y: 583, W: 15, H: 15}, -5, 5)
		w.Opponent.Y = 500
		Expect(g.SetWorld(w)).To(Succeed())

		w = g.Tick(pong.Idle)
		Expect(w.DX).To(Equal(5))
		Expect(w.DY).To(Equal(-5))
		p, o := g.Score()
		Expect(p + o).To(BeZero())
	})

	It("awards the player a point when the ball leaves on the left", func() {
		scripted(g, pong.Rect{X: 3, Y: 50, W: 15, H: 15}, -5, 5)
		w := g.Tick(pong.Idle)
		Expect(w.PlayerScore).To(Equal(1))
		Expect(w.OpponentScore).To(Equal(0))
		Expect(w.Ball.X).To(Equal(400))
		Expect(w.Ball.Y).To(Equal(300))
		Expect(w.DX).To(Or(Equal(5), Equal(-5)))
		Expect(w.DY).To(Or(Equal(5), Equal(-5)))
	})

	It("awards the opponent a point when the ball leaves on the right", func() {
		scripted(g, pong.Rect{X: 784, Y: 50, W: 15, H: 15}, 5, 5)
		w := g.Tick(pong.Idle)
		Expect(w.OpponentScore).To(Equal(1))
		Expect(w.PlayerScore).To(Equal(0))
		Expect(w.Ball.X).To(Equal(400))
	})

	It("lets a serve override a paddle bounce in the same tick", func() {
		scripted(g, pong.Rect{X: 2, Y: 290, W: 15, H: 15}, -5, 5)
		w := g.Tick(pong.Idle)
		Expect(w.PlayerScore).To(Equal(1))
		Expect(w.Ball.X).To(Equal(400))
		Expect(w.Ball.Y).To(Equal(300))
	})

	It("clamps the player paddle to the playfield", func() {
		w := g.World()
		w.Player.Y = 2
		Expect(g.SetWorld(w)).To(Succeed())
		Expect(g.Tick(pong.Up).Player.Y).To(Equal(0))
		Expect(g.Tick(pong.Up).Player.Y).To(Equal(0))

		w = g.World()
		w.Player.Y = 498
		Expect(g.SetWorld(w)).To(Succeed())
		Expect(g.Tick(pong.Down).Player.Y).To(Equal(500))
	})

	It("moves the player by the paddle speed", func() {
		Expect(g.Tick(pong.Down).Player.Y).To(Equal(256))
		Expect(g.Tick(pong.Up).Player.Y).To(Equal(250))
		Expect(g.Tick(pong.Idle).Player.Y).To(Equal(250))
	})

	It("leaves the opponent in place for states the policy never saw", func() {
		for i := 0; i < 50; i++ {
			Expect(g.Tick(pong.Idle).Opponent.Y).To(Equal(250))
		}
	})
})

var _ = Describe("Policy-driven opponent", func() {
	It("follows the looked-up action", func() {
		keyed := newGame(mustTable(nil))
		scripted(keyed, pong.Rect{X: 400, Y: 300, W: 15, H: 15}, 5, 5)
		key := keyed.StateKey()
		Expect(key).To(Equal(policy.Key{Paddle: 12, BallX: 25, BallY: 20, DX: 1, DY: 1}))

		g := newGame(mustTable(map[policy.Key]policy.Action{key: policy.MoveDown}))
		scripted(g, pong.Rect{X: 400, Y: 300, W: 15, H: 15}, 5, 5)
		Expect(g.Tick(pong.Idle).Opponent.Y).To(Equal(256))
	})

	It("clamps the opponent at the top edge", func() {
		keyed := newGame(mustTable(nil))
		w := scripted(keyed, pong.Rect{X: 400, Y: 300, W: 15, H: 15}, -5, -5)
		w.Opponent.Y = 3
		Expect(keyed.SetWorld(w)).To(Succeed())

		g := newGame(mustTable(map[policy.Key]policy.Action{keyed.StateKey(): policy.MoveUp}))
		Expect(g.SetWorld(w)).To(Succeed())
		Expect(g.Tick(pong.Idle).Opponent.Y).To(Equal(0))
	})

	It("encodes velocity signs in the state key", func() {
		g := newGame(mustTable(nil))
		scripted(g, pong.Rect{X: 0, Y: 0, W: 15, H: 15}, -5, 5)
		k := g.StateKey()
		Expect(k.DX).To(Equal(-1))
		Expect(k.DY).To(Equal(1))
		Expect(k.BallX).To(Equal(0))
	})
})

var _ = Describe("Match", func() {
	It("keeps scores monotonic and increments by one per point", func() {
		g, err := pong.NewGame(pong.DefaultConfig(), mustTable(nil), rand.NewSource(3))
		Expect(err).NotTo(HaveOccurred())

		prevP, prevO := 0, 0
		for i := 0; i < 20000; i++ {
			w := g.Tick(pong.Idle)
			gained := (w.PlayerScore - prevP) + (w.OpponentScore - prevO)
			Expect(gained).To(BeNumerically(">=", 0))
			Expect(gained).To(BeNumerically("<=", 1))
			prevP, prevO = w.PlayerScore, w.OpponentScore
		}
		Expect(prevP + prevO).To(BeNumerically(">", 0))
	})

	It("plays a headless match with a tracking player", func() {
		g := newGame(mustTable(nil))
		res, err := pong.Match(context.Background(), g, pong.Tracker{Deadband: 10}, 5000, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Ticks).To(Equal(5000))
		Expect(res.Points).To(HaveLen(res.PlayerScore + res.OpponentScore))
		p, o := g.Score()
		Expect(res.PlayerScore).To(Equal(p))
		Expect(res.OpponentScore).To(Equal(o))
	})

	It("stops when the context is cancelled", func() {
		g := newGame(mustTable(nil))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := pong.Match(ctx, g, pong.NewRandomPlayer(rand.NewSource(9)), 100, nil)
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Ticks).To(BeZero())
	})

	It("is reproducible for a fixed seed", func() {
		play := func() pong.MatchResult {
			g, err := pong.NewGame(pong.DefaultConfig(), mustTable(nil), rand.NewSource(11))
			Expect(err).NotTo(HaveOccurred())
			res, err := pong.Match(context.Background(), g, pong.NewRandomPlayer(rand.NewSource(12)), 3000, nil)
			Expect(err).NotTo(HaveOccurred())
			return res
		}
		Expect(play()).To(Equal(play()))
	})
})

var _ = Describe("Rect", func() {
	It("does not treat touching edges as overlap", func() {
		a := pong.Rect{X: 0, Y: 0, W: 10, H: 10}
		Expect(a.Overlaps(pong.Rect{X: 10, Y: 0, W: 10, H: 10})).To(BeFalse())
		Expect(a.Overlaps(pong.Rect{X: 9, Y: 9, W: 10, H: 10})).To(BeTrue())
	})
})
