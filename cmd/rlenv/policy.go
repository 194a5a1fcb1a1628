package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/rlenv/internal/policy"
)

func newPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "policy table tools",
	}
	inspect := &cobra.Command{
		Use:   "inspect [file]",
		Short: "validate a policy table and print its action histogram",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectPolicy,
	}
	cmd.AddCommand(inspect)
	return cmd
}

func inspectPolicy(cmd *cobra.Command, args []string) error {
	table, err := policy.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig("pong")
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d states\n", args[0], table.Len())
	stats := table.Stats()
	for _, a := range []policy.Action{policy.MoveUp, policy.Stay, policy.MoveDown} {
		share := 0.0
		if table.Len() > 0 {
			share = 100 * float64(stats[a]) / float64(table.Len())
		}
		fmt.Printf("  %-5s %8d  %5.1f%%\n", a, stats[a], share)
	}

	bins := cfg.Pong.Bins()
	if err := table.Validate(bins); err != nil {
		fmt.Printf("incompatible with bins %+v: %v\n", bins, err)
		return err
	}
	total := bins.Paddle * bins.BallX * bins.BallY * 4
	fmt.Printf("covers %d of %d reachable states for %dx%d playfield\n",
		table.Len(), total, cfg.Pong.Width, cfg.Pong.Height)
	return nil
}
