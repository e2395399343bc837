package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"stackplan/cmd/ui/spinner"
	"stackplan/pkg/detector"
	"stackplan/pkg/optimizer"
	"stackplan/pkg/util"
)

// inputOptions selects the project snapshot and the sizing preference
type inputOptions struct {
	filesPath   string
	description string
	budget      string
	scale       string
	environment string
	priority    string
}

func (o *inputOptions) bind(cmd *cobra.Command, withPreference bool) {
	f := cmd.Flags()
	f.StringVar(&o.filesPath, "files", "", "Read a JSON list of {path, content} objects instead of scanning (- for stdin)")
	f.StringVarP(&o.description, "description", "d", "", "Free-text description of the project")
	if !withPreference {
		return
	}
	f.StringVar(&o.budget, "budget", "", "Budget tier: minimal, standard or performance")
	f.StringVar(&o.scale, "scale", "", "Expected scale: small, medium or large")
	f.StringVar(&o.environment, "env", "", "Target environment: development, staging or production")
	f.StringVar(&o.priority, "priority", "", "Sizing priority: cost, performance or balanced")
}

// preference layers flag values over the configured preference. Flags are
// validated strictly; anything still unset takes the built-in default.
func (o *inputOptions) preference(base optimizer.Preference) (optimizer.Preference, error) {
	p := base
	if o.budget != "" {
		p.Budget = optimizer.Budget(o.budget)
	}
	if o.scale != "" {
		p.Scale = optimizer.Scale(o.scale)
	}
	if o.environment != "" {
		p.Environment = optimizer.Environment(o.environment)
	}
	if o.priority != "" {
		p.Priority = optimizer.Priority(o.priority)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p.Normalize(), nil
}

// projectRoot resolves the optional PATH argument. When files come from
// --files the directory only supplies names, so it need not exist.
func (o *inputOptions) projectRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	if o.filesPath != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return filepath.Clean(root), nil
		}
		return abs, nil
	}
	return util.ValidateProjectPath(root)
}

// collect gathers the project files, either from --files or by scanning root
func (g *globalOptions) collect(cmd *cobra.Command, in *inputOptions, root string) ([]detector.FileArtifact, error) {
	if in.filesPath != "" {
		files, err := readFiles(cmd.InOrStdin(), in.filesPath)
		if err != nil {
			return nil, err
		}
		logrus.WithField("count", len(files)).Debug("read files list")
		return files, nil
	}

	var files []detector.FileArtifact
	scan := func() error {
		var err error
		files, err = detector.CollectDir(cmd.Context(), root, g.cfg.Scan.Options())
		return err
	}

	var err error
	stderr := cmd.ErrOrStderr()
	if g.interactive(stderr) {
		err = spinner.While("Scanning project...", scan, tea.WithOutput(stderr))
	} else {
		err = scan()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	logrus.WithFields(logrus.Fields{
		"root":  root,
		"count": len(files),
	}).Debug("scanned project")
	return files, nil
}

func readFiles(stdin io.Reader, path string) ([]detector.FileArtifact, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open files list: %w", err)
		}
		defer f.Close()
		r = f
	}

	var files []detector.FileArtifact
	if err := json.NewDecoder(r).Decode(&files); err != nil {
		return nil, fmt.Errorf("failed to parse files list: %w", err)
	}
	return files, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
