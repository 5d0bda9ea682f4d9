package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glory-app/glory/internal/app"
)

var statusMock bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe the live client once and print the player's stats",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config:\n%w", err)
		}

		src := app.LiveSources(cfg)
		if statusMock {
			src = app.MockSources(1)
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		active, err := src.Probe.Active(ctx)
		switch {
		case err != nil:
			fmt.Fprintf(out, "match:  not in game (%v)\n", err)
			return nil
		case !active:
			fmt.Fprintln(out, "match:  not in game")
			return nil
		}
		fmt.Fprintln(out, "match:  in game")

		snap, err := src.Stats.Fetch(ctx, cfg.Player.Name)
		if err != nil {
			fmt.Fprintf(out, "stats:  unavailable (%v)\n", err)
			return nil
		}
		fmt.Fprintf(out, "player: %s\nkda:    %s\ncs:     %d\n", cfg.Player.Name, snap.KDA(), snap.CreepScore)
		return nil
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusMock, "mock", false, "query a simulated match")
}
