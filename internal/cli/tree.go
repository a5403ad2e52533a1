package cli

import (
	"github.com/spf13/cobra"
)

// treeCommand creates the tree command for printing ASCII dependency trees.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags        buildFlags
		displayDepth int
		jsonOut      string
	)

	cmd := &cobra.Command{
		Use:   "tree <registry> <package>",
		Short: "Print the dependency tree of a package",
		Long: `Print the dependency tree of a package.

Packages reached again through another path are marked "(shared, see above)"
and back edges are marked "(cycle)", so each dependency is expanded once.`,
		Example: `  depviz tree crates serde
  depviz tree npm express --max-depth 2`,
		Args: exactArgs(2),
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
			depth := displayDepth
			if depth == 0 {
				depth = flags.options().WithDefaults().MaxDepth
			}
			return c.writeOutputs(cmd.Context(), res.Graph, outputs{
				ascii:        true,
				displayDepth: depth,
				json:         jsonOut,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&displayDepth, "display-depth", 0, "maximum depth to print (default: --max-depth)")
	cmd.Flags().StringVar(&jsonOut, "json", "", "also export the graph as JSON to this file")
	return cmd
}
