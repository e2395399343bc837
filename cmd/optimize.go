package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stackplan/cmd/ui/detection"
	"stackplan/pkg/pipeline"
)

func newOptimizeCmd(g *globalOptions) *cobra.Command {
	in := &inputOptions{}

	cmd := &cobra.Command{
		Use:   "optimize [PROJECT_PATH]",
		Short: "Classify a project and size its infrastructure",
		Long: `Classify a project, then choose a compute bundle, database and storage
for the given budget, scale, environment and priority, with a cost breakdown
and recommendations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pref, err := in.preference(g.cfg.Preference)
			if err != nil {
				return err
			}
			root, err := in.projectRoot(args)
			if err != nil {
				return err
			}
			files, err := g.collect(cmd, in, root)
			if err != nil {
				return err
			}

			p := pipeline.New(nil, pipeline.WithLogger(logrus.StandardLogger()))
			result := p.Plan(pipeline.Request{
				Files:       files,
				Description: in.description,
				Preference:  pref,
			})

			out := cmd.OutOrStdout()
			if !g.interactive(out) {
				return writeJSON(out, result)
			}
			fmt.Fprint(out, detection.Render(result.Analysis, &result.Optimization))
			return nil
		},
	}

	in.bind(cmd, true)
	return cmd
}
