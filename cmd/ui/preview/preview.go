// Package preview prints generated artifacts, syntax highlighted when the
// destination is a terminal.
package preview

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
)

const (
	DefaultTheme = "monokai"
	formatter    = "terminal256"
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#01FAC6")).Bold(true)

// YAML writes source under a header naming path. Highlighting is skipped
// when color is false.
func YAML(w io.Writer, path, source string, color bool) error {
	fmt.Fprintf(w, "%s\n", headerStyle.Render("# "+path))
	if !color {
		_, err := io.WriteString(w, source)
		return err
	}
	if err := quick.Highlight(w, source, "yaml", formatter, DefaultTheme); err != nil {
		return fmt.Errorf("failed to highlight %s: %w", path, err)
	}
	return nil
}
