package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/alloc/chain"
)

var runCmd = &cobra.Command{
	Use:   "run OP...",
	Short: "Run an allocation script against the chain",
	Long: `Run executes each OP in order against a freshly built chain:

  alloc:SIZE        allocate SIZE bytes at the default alignment
  alloc:SIZE:ALIGN  allocate SIZE bytes at ALIGN
  free:INDEX        free the INDEX-th allocation (0-based)
  reset             release everything at once

Exhaustion is reported per step and does not stop the script.`,
	Example: `  allocctl run -b linear -s 1024 alloc:1024 alloc:1 reset alloc:1
  allocctl run -b null -a 64 alloc:1`,
	Args: cobra.MinimumNArgs(1),
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

		steps, err := runScript(box, args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOut {
			return printJSON(out, steps)
		}
		for i, st := range steps {
			switch {
			case st.Error != "":
				fmt.Fprintf(out, "%3d %-16s FAILED %s\n", i, st.Op, st.Error)
			case st.Offset != nil:
				fmt.Fprintf(out, "%3d %-16s offset=%d used=%d remain=%d\n", i, st.Op, *st.Offset, st.Used, st.Remain)
			default:
				fmt.Fprintf(out, "%3d %-16s used=%d remain=%d\n", i, st.Op, st.Used, st.Remain)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
