package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackplan/cmd/ui/detection"
	"stackplan/pkg/detector"
	"stackplan/pkg/rules"
)

func newDetectCmd(g *globalOptions) *cobra.Command {
	in := &inputOptions{}

	cmd := &cobra.Command{
		Use:   "detect [PROJECT_PATH]",
		Short: "Classify a project",
		Long: `Scan a project and report its application type, frameworks, databases,
storage and security needs, and a rough monthly cost range.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := in.projectRoot(args)
			if err != nil {
				return err
			}
			files, err := g.collect(cmd, in, root)
			if err != nil {
				return err
			}

			analysis := detector.NewClassifier(rules.Default()).Classify(files, in.description)

			out := cmd.OutOrStdout()
			if !g.interactive(out) {
				return writeJSON(out, analysis)
			}
			fmt.Fprintf(out, "%s\n", logoStyle.Render(Logo))
			fmt.Fprint(out, detection.Render(analysis, nil))
			fmt.Fprintf(out, "\n%s\n", tipMsgStyle.Render("Tip: run 'stackplan plan' to generate deployment artifacts"))
			return nil
		},
	}

	in.bind(cmd, false)
	return cmd
}
