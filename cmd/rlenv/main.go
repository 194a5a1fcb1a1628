package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/rlenv/internal/config"
)

var (
	configFile string
	preset     string
	logLevel   string
	seed       uint64

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "rlenv",
		Short:         "pendulum and pong environments for reinforcement learning",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      time.Kitchen,
				Prefix:          "rlenv",
				Level:           level,
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")

	rootCmd.AddCommand(
		newPendulumCmd(),
		newPongCmd(),
		newEpisodesCmd(),
		newMatchCmd(),
		newPolicyCmd(),
		newTuneCmd(),
		newPresetsCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves --config, then --preset for model, then defaults.
func loadConfig(model string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if preset != "" {
		cfg := config.GetPreset(model, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q for %s, try: %v", preset, model, config.ListPresets(model))
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

// resolveSeed prefers the --seed flag, then the configured seed, then the
// clock. Commands that run several environments derive one seed each from
// the result.
func resolveSeed(flag, configured uint64) uint64 {
	if flag != 0 {
		return flag
	}
	if configured != 0 {
		return configured
	}
	return uint64(time.Now().UnixNano())
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for pendulum or pong",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}
}
