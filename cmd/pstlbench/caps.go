package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCapsCmd() *cobra.Command {
	var flags runtimeFlags
	cmd := &cobra.Command{
		Use:   "caps",
		Short: "Print the detected capability descriptor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := flags.newRuntime()
			defer rt.Close()

			c := rt.Capabilities()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "simd:       %s (%d bytes)\n", c.SIMD, c.Width)
			fmt.Fprintf(out, "vector:     %t\n", c.Vector)
			fmt.Fprintf(out, "monotonic:  %t\n", c.Monotonic)
			fmt.Fprintf(out, "early exit: %t\n", c.EarlyExit)
			fmt.Fprintf(out, "parallel:   %t\n", c.Parallel)
			fmt.Fprintf(out, "workers:    %d\n", rt.Executor().Workers())
			fmt.Fprintf(out, "grain:      %d\n", rt.Executor().Grain())
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
