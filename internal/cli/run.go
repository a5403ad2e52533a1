package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/depviz/pkg/config"
	"github.com/matzehuels/depviz/pkg/registry"
)

// runCommand creates the configuration-driven command.
func (c *CLI) runCommand() *cobra.Command {
	var (
		path     string
		flags    buildFlags
		jsonOut  string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve and render the package named in a configuration file",
		Long: `Resolve and render the package named in a configuration file.

The configuration (JSON by default, or TOML/YAML by extension) names the
package, the registry URL, the output image and whether to print the ASCII
tree. Resolver flags given on the command line override the file.`,
		Example: `  depviz run
  depviz run --config serde.toml --max-depth 2`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			overrideConfig(cmd, cfg, &flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := checkImagePath(cfg.OutputImage); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("config", "path", path, "effective", cfg.String())

			kind, err := cfg.Registry()
			if err != nil {
				return err
			}

			timeout, _ := cfg.TimeoutDuration()
			req := buildRequest{
				kind:    kind,
				pkg:     cfg.PackageName,
				opts:    cfg.BuildOptions(),
				timeout: timeout,
			}
			if cfg.TestRepoMode {
				req.kind = registry.Local
				req.testRepo = cfg.TestRepoPath
			}

			res, err := c.build(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.writeOutputs(cmd.Context(), res.Graph, outputs{
				ascii:        cfg.ASCIITree,
				displayDepth: cfg.DisplayDepth(),
				image:        cfg.OutputImage,
				detailed:     detailed,
				json:         jsonOut,
			})
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", config.DefaultPath, "configuration file")
	flags.register(cmd)
	cmd.Flags().StringVar(&jsonOut, "json", "", "also export the graph as JSON to this file")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show depth and state in image node labels")
	return cmd
}

// overrideConfig applies the resolver flags the user set explicitly.
func overrideConfig(cmd *cobra.Command, cfg *config.Config, f *buildFlags) {
	if cmd.Flags().Changed("max-depth") {
		depth := f.maxDepth
		cfg.MaxDepth = &depth
	}
	if cmd.Flags().Changed("max-nodes") {
		cfg.MaxNodes = f.maxNodes
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout = f.timeout.String()
	}
	if cmd.Flags().Changed("test-repo") {
		cfg.TestRepoMode = true
		cfg.TestRepoPath = f.testRepo
	}
}
