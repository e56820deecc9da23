package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/alloc"
	"github.com/pavanmanishd/alloc/chain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the chain and print its counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		box, cleanup, err := chain.Build(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		s := alloc.Snapshot(box)
		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, struct {
				Config any         `json:"config"`
				Stats  alloc.Stats `json:"stats"`
			}{cfg, s})
		}
		fmt.Fprintf(out, "Backend:     %s\n", cfg.Backend)
		if cfg.Align != 0 {
			fmt.Fprintf(out, "Alignment:   %d\n", cfg.Align)
		}
		fmt.Fprintf(out, "Capacity:    %d bytes\n", s.Capacity)
		fmt.Fprintf(out, "Used:        %d bytes\n", s.Used)
		fmt.Fprintf(out, "Remain:      %d bytes\n", s.Remain)
		fmt.Fprintf(out, "Utilization: %.1f%%\n", s.Utilization*100)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
