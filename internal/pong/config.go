package pong

import (
	"fmt"

	"github.com/san-kum/rlenv/internal/dynamo"
	"github.com/san-kum/rlenv/internal/policy"
)

// Config holds the playfield geometry, speeds and discretization bins.
type Config struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	BallSpeed      int `yaml:"ball_speed"`
	PaddleSpeed    int `yaml:"paddle_speed"`
	OpponentSpeed  int `yaml:"opponent_speed"`
	PaddleWidth    int `yaml:"paddle_width"`
	PaddleHeight   int `yaml:"paddle_height"`
	BallSize       int `yaml:"ball_size"`
	PaddleBins     int `yaml:"paddle_bins"`
	BallXBins      int `yaml:"ball_x_bins"`
	BallYBins      int `yaml:"ball_y_bins"`
	PlayerOffset   int `yaml:"player_offset"`
	OpponentOffset int `yaml:"opponent_offset"`
}

func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         600,
		BallSpeed:      5,
		PaddleSpeed:    6,
		OpponentSpeed:  6,
		PaddleWidth:    10,
		PaddleHeight:   100,
		BallSize:       15,
		PaddleBins:     30,
		BallXBins:      50,
		BallYBins:      40,
		PlayerOffset:   20,
		OpponentOffset: 10,
	}
}

func (c Config) Bins() policy.Bins {
	return policy.Bins{Paddle: c.PaddleBins, BallX: c.BallXBins, BallY: c.BallYBins}
}

func (c Config) Validate() error {
	positive := map[string]int{
		"width": c.Width, "height": c.Height, "ball_speed": c.BallSpeed,
		"paddle_width": c.PaddleWidth, "paddle_height": c.PaddleHeight, "ball_size": c.BallSize,
		"paddle_bins": c.PaddleBins, "ball_x_bins": c.BallXBins, "ball_y_bins": c.BallYBins,
	}
	for name, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", dynamo.ErrParameterBounds, name, v)
		}
	}
	if c.PaddleSpeed < 0 || c.OpponentSpeed < 0 {
		return fmt.Errorf("%w: paddle speeds must be non-negative", dynamo.ErrParameterBounds)
	}
	if c.PaddleHeight > c.Height || c.BallSize > c.Height {
		return fmt.Errorf("%w: paddle and ball must fit the playfield height %d", dynamo.ErrParameterBounds, c.Height)
	}
	if c.OpponentOffset < 0 || c.PlayerOffset < c.PaddleWidth || c.OpponentOffset+c.PaddleWidth > c.Width-c.PlayerOffset {
		return fmt.Errorf("%w: paddle offsets do not fit the playfield width %d", dynamo.ErrParameterBounds, c.Width)
	}
	return nil
}
