package pong

import "golang.org/x/exp/rand"

// Player decides the player paddle input from the current world.
type Player interface {
	Input(w World) Input
}

// Tracker keeps the paddle centre on the ball centre, ignoring offsets
// smaller than Deadband.
type Tracker struct {
	Deadband int
}

func (t Tracker) Input(w World) Input {
	paddle := w.Player.Y + w.Player.H/2
	ball := w.Ball.Y + w.Ball.H/2
	switch {
	case ball < paddle-t.Deadband:
		return Up
	case ball > paddle+t.Deadband:
		return Down
	default:
		return Idle
	}
}

// RandomPlayer picks uniformly among Up, Idle and Down.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(src rand.Source) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(src)}
}

func (r *RandomPlayer) Input(w World) Input {
	return Input(r.rng.Intn(3) - 1)
}
