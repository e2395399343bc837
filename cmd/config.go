package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"stackplan/pkg/config"
)

var (
	configStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	configLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	configValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	configMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	configSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
)

func newConfigCmd(g *globalOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage stackplan configuration",
		Long:  `Show or change the defaults used when planning deployments.`,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if g.jsonOutput {
				return writeJSON(out, g.cfg)
			}

			cfg := g.cfg
			region := config.ResolveRegion("", cfg)
			if cfg.Region == "" {
				region += configMutedStyle.Render(" (resolved)")
			}

			fmt.Fprintln(out, configStyle.Render("Configuration:"))
			fmt.Fprintf(out, "  %s\n\n", configMutedStyle.Render(g.configPath))
			rows := [][2]string{
				{"region", region},
				{"preference.budget", string(cfg.Preference.Budget)},
				{"preference.scale", string(cfg.Preference.Scale)},
				{"preference.environment", string(cfg.Preference.Environment)},
				{"preference.priority", string(cfg.Preference.Priority)},
				{"scan.max_depth", fmt.Sprint(cfg.Scan.MaxDepth)},
				{"scan.max_content_chars", fmt.Sprint(cfg.Scan.MaxContentChars)},
				{"scan.max_files", fmt.Sprint(cfg.Scan.MaxFiles)},
				{"scan.concurrency", fmt.Sprint(cfg.Scan.Concurrency)},
				{"workflow.reusable", cfg.Workflow.Reusable},
				{"logging.level", cfg.Logging.Level},
				{"logging.format", cfg.Logging.Format},
				{"logging.output", cfg.Logging.Output},
			}
			for _, row := range rows {
				value := row[1]
				if value == "" {
					value = configMutedStyle.Render("(default)")
				}
				fmt.Fprintf(out, "  %-24s %s\n", configLabelStyle.Render(row[0]), configValueStyle.Render(value))
			}
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Known keys:\n  " + strings.Join(config.Keys(), "\n  "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := g.cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := g.cfg.SaveConfigTo(g.configPath); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", configSuccessStyle.Render(fmt.Sprintf("✓ %s = %s", args[0], args[1])))
			return nil
		},
	}

	configCmd.AddCommand(showCmd, setCmd)
	return configCmd
}
