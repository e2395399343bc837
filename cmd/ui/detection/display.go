package detection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stackplan/pkg/detector"
	"stackplan/pkg/optimizer"
)

var (
	titleStyle        = lipgloss.NewStyle().Background(lipgloss.Color("#01FAC6")).Foreground(lipgloss.Color("#030303")).Bold(true).Padding(0, 1, 0)
	focusedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
	descriptionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#40BDA3"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#01FAC6")).
			Padding(1, 2).
			Width(64)
)

// Render draws the classification summary, followed by the sizing summary
// when opt is set.
func Render(a detector.Analysis, opt *optimizer.Optimization) string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Project Analysis"))
	s.WriteString("\n\n")
	s.WriteString(boxStyle.Render(analysisContent(a)))

	if opt != nil {
		s.WriteString("\n\n")
		s.WriteString(titleStyle.Render("Infrastructure Plan"))
		s.WriteString("\n\n")
		s.WriteString(boxStyle.Render(optimizationContent(*opt)))
	}
	s.WriteString("\n")
	return s.String()
}

func label(b *strings.Builder, name, value string) {
	b.WriteString(focusedStyle.Render(name + ": "))
	b.WriteString(selectedItemStyle.Render(value))
	b.WriteString("\n")
}

func analysisContent(a detector.Analysis) string {
	var content strings.Builder

	label(&content, "Type", string(a.DetectedType))
	label(&content, "Confidence", fmt.Sprintf("%.0f%%", a.Confidence*100))
	label(&content, "Complexity", string(a.DeploymentComplexity))
	label(&content, "Estimated cost", fmt.Sprintf("$%.0f-$%.0f/mo", a.EstimatedCost.MonthlyMin, a.EstimatedCost.MonthlyMax))

	if len(a.Frameworks) > 0 {
		content.WriteString("\n")
		content.WriteString(focusedStyle.Render("Frameworks:"))
		content.WriteString("\n")
		for _, f := range a.Frameworks {
			content.WriteString(successStyle.Render("  ✓ "))
			content.WriteString(descriptionStyle.Render(fmt.Sprintf("%s (%s, %s)", f.Name, f.Category, f.Source)))
			content.WriteString("\n")
		}
	}

	if len(a.Databases) > 0 {
		content.WriteString("\n")
		content.WriteString(focusedStyle.Render("Databases:"))
		content.WriteString("\n")
		for _, d := range a.Databases {
			content.WriteString(successStyle.Render("  ✓ "))
			content.WriteString(descriptionStyle.Render(d.Name))
			content.WriteString("\n")
		}
	}

	if len(a.Signals) > 0 {
		content.WriteString("\n")
		content.WriteString(focusedStyle.Render("Signals:"))
		content.WriteString("\n")
		for _, signal := range a.Signals {
			content.WriteString(helpStyle.Render("  · " + signal))
			content.WriteString("\n")
		}
	}

	return strings.TrimRight(content.String(), "\n")
}

func optimizationContent(opt optimizer.Optimization) string {
	var content strings.Builder

	b := opt.RecommendedBundle
	label(&content, "Bundle", fmt.Sprintf("%s (%d vCPU, %gGB RAM, %dGB disk)", b.Name, b.VCPU, b.RAMGB, b.DiskGB))
	if opt.DatabaseConfig != nil {
		db := opt.DatabaseConfig
		label(&content, "Database", fmt.Sprintf("%s %s", db.Engine, db.Size))
	}
	if opt.BucketConfig != nil {
		label(&content, "Bucket", fmt.Sprintf("%s (%dGB)", opt.BucketConfig.Size, opt.BucketConfig.StorageGB))
	}
	label(&content, "Monthly cost", fmt.Sprintf("$%.2f", opt.CostBreakdown.Total))
	label(&content, "Scores", fmt.Sprintf("performance %d, cost efficiency %d", opt.PerformanceScore, opt.CostEfficiencyScore))

	if len(opt.Recommendations) > 0 {
		content.WriteString("\n")
		content.WriteString(focusedStyle.Render("Recommendations:"))
		content.WriteString("\n")
		for i, r := range opt.Recommendations {
			content.WriteString(fmt.Sprintf("  %s ", successStyle.Render(fmt.Sprintf("%d.", i+1))))
			content.WriteString(descriptionStyle.Render(fmt.Sprintf("[%s/%s] %s", r.Type, r.Priority, r.Message)))
			content.WriteString("\n")
		}
	}

	return strings.TrimRight(content.String(), "\n")
}
