package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depviz/pkg/deps"
	"github.com/matzehuels/depviz/pkg/errors"
	pkgio "github.com/matzehuels/depviz/pkg/io"
)

// viewCommand creates the view command for rendering exported graphs.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		output       string
		detailed     bool
		displayDepth int
	)

	cmd := &cobra.Command{
		Use:   "view <graph.json>",
		Short: "Render a graph exported with --json",
		Long: `Render a graph exported with --json without contacting a registry.

The ASCII tree is printed unless --output is given.`,
		Example: `  depviz view serde.json
  depviz view serde.json -o serde.svg`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkImagePath(output); err != nil {
				return err
			}
			g, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", args[0])
			}
			printStats(c.err, g, deps.Limits{})
			return c.writeOutputs(cmd.Context(), g, outputs{
				ascii:        output == "",
				displayDepth: displayDepth,
				image:        output,
				detailed:     detailed,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output image file (.png, .svg, .jpg, .dot)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show depth and state in image node labels")
	cmd.Flags().IntVar(&displayDepth, "display-depth", 0, "maximum tree depth to print (0 = unlimited)")
	return cmd
}
