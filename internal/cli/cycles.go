package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cyclesCommand creates the cycles command for listing dependency cycles.
func (c *CLI) cyclesCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:     "cycles <registry> <package>",
		Short:   "List dependency cycles reachable from a package",
		Example: `  depviz cycles npm eslint`,
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseTarget(args[0], args[1])
			if err != nil {
				return err
			}
			res, err := c.build(cmd.Context(), buildRequest{
				kind:     kind,
				pkg:      args[1],
				testRepo: flags.testRepo,
				opts:     flags.options(),
				timeout:  flags.timeout,
			})
			if err != nil {
				return err
			}

			cycles := res.Graph.DetectCycles()
			if len(cycles) == 0 {
				fmt.Fprintln(c.out, "no cycles")
				return nil
			}
			for _, cycle := range cycles {
				fmt.Fprintln(c.out, formatCycle(res.Graph, cycle))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
