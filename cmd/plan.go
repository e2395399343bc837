package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stackplan/cmd/ui/preview"
	"stackplan/pkg/config"
	"stackplan/pkg/emitter"
	"stackplan/pkg/pipeline"
	"stackplan/pkg/state"
	"stackplan/pkg/util"
)

type planOptions struct {
	inputOptions
	appName      string
	instanceName string
	region       string
	sourceDir    string
	outDir       string
	show         bool
	dryRun       bool
}

func newPlanCmd(g *globalOptions) *cobra.Command {
	o := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan [PROJECT_PATH...]",
		Short: "Generate the deployment descriptor and workflow",
		Long: `Classify and size each project, then write its deployment descriptor and
.github/workflows/deploy-<app>.yml. Several projects are planned concurrently;
each writes into its own directory unless --out is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, g, o, args)
		},
	}

	o.bind(cmd, true)
	f := cmd.Flags()
	f.StringVar(&o.appName, "app-name", "", "Application name (default: project directory name)")
	f.StringVar(&o.instanceName, "instance-name", "", "Instance name (default: <app>-instance)")
	f.StringVar(&o.region, "region", "", "Deployment region (default: config, AWS environment or us-east-1)")
	f.StringVar(&o.sourceDir, "source-dir", "", "Application source directory inside the repository (default: the repository root)")
	f.StringVarP(&o.outDir, "out", "o", "", "Directory to write artifacts into (default: the project directory)")
	f.BoolVar(&o.show, "show", false, "Print the generated artifacts")
	f.BoolVar(&o.dryRun, "dry-run", false, "Generate without writing files")
	return cmd
}

func runPlan(cmd *cobra.Command, g *globalOptions, o *planOptions, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}
	if len(args) > 1 && (o.appName != "" || o.instanceName != "" || o.filesPath != "") {
		return errors.New("--app-name, --instance-name and --files apply to a single project")
	}

	pref, err := o.preference(g.cfg.Preference)
	if err != nil {
		return err
	}
	region := config.ResolveRegion(o.region, g.cfg)

	roots := make([]string, len(args))
	reqs := make([]pipeline.Request, len(args))
	for i, arg := range args {
		root, err := o.projectRoot([]string{arg})
		if err != nil {
			return err
		}
		files, err := g.collect(cmd, &o.inputOptions, root)
		if err != nil {
			return err
		}
		roots[i] = root
		reqs[i] = pipeline.Request{
			Files:       files,
			Description: o.description,
			Preference:  pref,
			Naming:      o.naming(root, region, g.cfg.Workflow.Reusable),
		}
	}

	p := pipeline.New(nil,
		pipeline.WithLogger(logrus.StandardLogger()),
		pipeline.WithConcurrency(g.cfg.Scan.Concurrency),
	)
	results, err := p.RunAll(cmd.Context(), reqs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color := g.interactive(out)
	store := state.NewStore(filepath.Join(filepath.Dir(g.configPath), "state"))
	var messages []string
	for i, result := range results {
		if o.show {
			if err := showArtifacts(cmd, result.Artifacts, color); err != nil {
				return err
			}
		}
		if o.dryRun {
			continue
		}
		dir := o.outDir
		if dir == "" {
			dir = roots[i]
		}
		paths, err := writeArtifacts(dir, result.Artifacts)
		if err != nil {
			return err
		}
		for _, path := range paths {
			messages = append(messages, endingMsgStyle.Render("✅ Wrote "+path))
		}

		app := reqs[i].Naming.AppName
		changed, err := store.Record(app, &state.PlanState{
			Digest:       result.Digest,
			DetectedType: result.Analysis.DetectedType,
			Bundle:       result.Optimization.RecommendedBundle.Name,
			MonthlyTotal: result.Optimization.CostBreakdown.Total,
			Artifacts:    paths,
		})
		if err != nil {
			logrus.WithError(err).WithField("app", app).Warn("failed to record plan state")
		} else if !changed {
			messages = append(messages, tipMsgStyle.Render(app+": project unchanged since the last plan"))
		}
	}

	if g.jsonOutput {
		return writeJSON(out, results)
	}
	for _, msg := range messages {
		fmt.Fprintf(out, "%s\n", msg)
	}
	return nil
}

// naming collects artifact names for one project. Flags win; otherwise
// names come from the directory, its git remote and its .env file.
func (o *planOptions) naming(root, region, reusable string) emitter.Naming {
	n := emitter.Naming{
		AppName:          o.appName,
		InstanceName:     o.instanceName,
		Region:           region,
		SourceDir:        o.sourceDir,
		ReusableWorkflow: reusable,
		Repository:       util.GitHubRepository(root),
	}
	if n.AppName == "" {
		n.AppName = util.AppNameFromPath(root)
	}
	// The workflow is written into the project, so the project is the
	// repository root the path filters are relative to.
	if n.SourceDir == "" {
		n.SourceDir = "."
	}

	envPath := filepath.Join(root, ".env")
	if _, err := os.Stat(envPath); err == nil {
		keys, err := util.EnvKeys(envPath)
		if err != nil {
			logrus.WithError(err).WithField("path", envPath).Warn("ignoring unreadable .env file")
		} else {
			n.EnvKeys = keys
		}
	}
	return n
}

func showArtifacts(cmd *cobra.Command, a *emitter.Artifacts, color bool) error {
	out := cmd.OutOrStdout()
	if err := preview.YAML(out, a.DescriptorPath, a.Descriptor, color); err != nil {
		return err
	}
	fmt.Fprintln(out)
	if err := preview.YAML(out, a.PipelinePath, a.Pipeline, color); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return nil
}

func writeArtifacts(dir string, a *emitter.Artifacts) ([]string, error) {
	files := []struct {
		path    string
		content string
	}{
		{a.DescriptorPath, a.Descriptor},
		{a.PipelinePath, a.Pipeline},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.path))
		if err := os.MkdirAll(filepath.Dir(target), config.PermDirectory); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", f.path, err)
		}
		if err := os.WriteFile(target, []byte(f.content), config.PermArtifact); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		logrus.WithField("path", target).Debug("wrote artifact")
		written = append(written, target)
	}
	return written, nil
}
