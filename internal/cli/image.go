package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depviz/pkg/errors"
)

// imageCommand creates the image command for rendering node-link diagrams.
func (c *CLI) imageCommand() *cobra.Command {
	var (
		flags    buildFlags
		output   string
		detailed bool
		jsonOut  string
	)

	cmd := &cobra.Command{
		Use:   "image <registry> <package>",
		Short: "Render a node-link diagram of a package's dependencies",
		Long: `Render a node-link diagram of a package's dependencies with Graphviz.

The format follows the output extension: .png, .svg, .jpg or .dot (DOT
source without layout). Cycle edges are drawn in red; failed packages in red
with the failure as tooltip.`,
		Example: `  depviz image crates tokio -o tokio.svg
  depviz image npm react -o react.png --detailed`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--output is required")
			}
			if err := checkImagePath(output); err != nil {
				return err
			}
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
			return c.writeOutputs(cmd.Context(), res.Graph, outputs{
				image:    output,
				detailed: detailed,
				json:     jsonOut,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file (.png, .svg, .jpg, .dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show depth and state in node labels")
	cmd.Flags().StringVar(&jsonOut, "json", "", "also export the graph as JSON to this file")
	return cmd
}
