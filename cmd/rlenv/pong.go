package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rlenv/internal/config"
	"github.com/san-kum/rlenv/internal/policy"
	"github.com/san-kum/rlenv/internal/pong"
	"github.com/san-kum/rlenv/internal/viz"
)

var (
	policyPath string
	games      int
	ticks      int
	opponent   string
)

func newPongCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pong",
		Short: "play pong against the policy table",
		RunE:  runPong,
	}
	cmd.Flags().StringVar(&policyPath, "policy", "", "policy table (json); defaults to pong.policy from the config")
	return cmd
}

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "play headless games of a scripted player against the policy table",
		RunE:  runMatch,
	}
	cmd.Flags().StringVar(&policyPath, "policy", "", "policy table (json); defaults to pong.policy from the config")
	cmd.Flags().IntVar(&games, "games", 1, "number of games played in parallel")
	cmd.Flags().IntVar(&ticks, "ticks", 0, "ticks per game (0 uses pong.ticks)")
	cmd.Flags().StringVar(&opponent, "player", "tracker", "scripted player: tracker or random")
	return cmd
}

func loadPong() (*config.Config, *policy.Table, error) {
	cfg, err := loadConfig("pong")
	if err != nil {
		return nil, nil, err
	}
	path := policyPath
	if path == "" {
		path = cfg.Pong.Policy
	}
	if path == "" {
		return nil, nil, fmt.Errorf("no policy table: pass --policy or set pong.policy")
	}
	table, err := policy.Load(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("policy loaded", "path", path, "entries", table.Len())
	return cfg, table, nil
}

func runPong(cmd *cobra.Command, args []string) error {
	cfg, table, err := loadPong()
	if err != nil {
		return err
	}
	g, err := pong.NewGame(cfg.Pong.Config, table, rand.NewSource(resolveSeed(seed, cfg.Pong.Seed)))
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(viz.NewPongModel(g), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
	return err
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, table, err := loadPong()
	if err != nil {
		return err
	}
	n := ticks
	if n <= 0 {
		n = cfg.Pong.Ticks
	}

	if games <= 0 {
		return fmt.Errorf("--games must be positive, got %d", games)
	}

	base := resolveSeed(seed, cfg.Pong.Seed)

	// games share the read-only table; everything else is per game
	results := make([]pong.MatchResult, games)
	g, ctx := errgroup.WithContext(cmd.Context())
	for i := 0; i < games; i++ {
		idx := i
		g.Go(func() error {
			game, err := pong.NewGame(cfg.Pong.Config, table, rand.NewSource(base+uint64(idx)))
			if err != nil {
				return err
			}
			var p pong.Player = pong.Tracker{Deadband: cfg.Pong.PaddleHeight / 4}
			if opponent == "random" {
				p = pong.NewRandomPlayer(rand.NewSource(^(base + uint64(idx))))
			}
			res, err := pong.Match(ctx, game, p, n, logger.With("game", idx))
			results[idx] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var player, policyPts int
	for i, r := range results {
		fmt.Printf("game %-3d %s\n", i, r)
		player += r.PlayerScore
		policyPts += r.OpponentScore
	}
	fmt.Printf("\ntotal: %s %d, policy %d\n", opponent, player, policyPts)
	return nil
}
