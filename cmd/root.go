package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stackplan/pkg/config"
	"stackplan/pkg/logging"
)

const Version = "1.0.0"

var (
	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	tipMsgStyle    = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
	endingMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

const Logo = `
███████╗████████╗ █████╗  ██████╗██╗  ██╗██████╗ ██╗      █████╗ ███╗   ██╗
██╔════╝╚══██╔══╝██╔══██╗██╔════╝██║ ██╔╝██╔══██╗██║     ██╔══██╗████╗  ██║
███████╗   ██║   ███████║██║     █████╔╝ ██████╔╝██║     ███████║██╔██╗ ██║
╚════██║   ██║   ██╔══██║██║     ██╔═██╗ ██╔═══╝ ██║     ██╔══██║██║╚██╗██║
███████║   ██║   ██║  ██║╚██████╗██║  ██╗██║     ███████╗██║  ██║██║ ╚████║
╚══════╝   ╚═╝   ╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝
`

// globalOptions is shared by every subcommand
type globalOptions struct {
	jsonOutput bool
	logLevel   string
	configPath string

	cfg       *config.Config
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "stackplan",
		Short: "Classify a project and plan its cloud deployment",
		Long: Logo + `
Stackplan reads a project's files, works out what kind of application it is,
sizes the infrastructure it needs and writes a deployment descriptor plus a
GitHub Actions workflow that deploys it.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: g.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			g.teardown()
		},
	}
	rootCmd.SetVersionTemplate("stackplan version {{.Version}}\n")

	rootCmd.PersistentFlags().BoolVar(&g.jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default ~/.stackplan/config.json)")

	rootCmd.AddCommand(
		newDetectCmd(g),
		newOptimizeCmd(g),
		newPlanCmd(g),
		newConfigCmd(g),
	)
	return rootCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "%s\n", errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func (g *globalOptions) setup(cmd *cobra.Command, args []string) error {
	if g.configPath == "" {
		g.configPath = config.GetConfigPath()
	}

	cfg, err := config.LoadConfigFrom(g.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if g.logLevel != "" {
		if _, err := logging.ParseLevel(g.logLevel); err != nil {
			return err
		}
		cfg.Logging.Level = g.logLevel
	}

	g.cfg = cfg
	g.logCloser = logging.Init(logrus.StandardLogger(), cfg.Logging)
	logrus.WithField("config", g.configPath).Debug("configuration loaded")
	return nil
}

func (g *globalOptions) teardown() {
	if g.logCloser != nil {
		g.logCloser.Close()
		g.logCloser = nil
	}
}

// interactive reports whether w is a terminal worth decorating
func (g *globalOptions) interactive(w io.Writer) bool {
	if g.jsonOutput || os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
