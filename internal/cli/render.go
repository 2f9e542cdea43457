package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type theme struct {
	Header lipgloss.Style
	Key    lipgloss.Style
	Accent lipgloss.Style
	Muted  lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Header: lipgloss.NewStyle().Bold(true),
		Key:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// renderer writes command results either as structured documents or as
// aligned, optionally coloured tables.
type renderer struct {
	out      io.Writer
	format   string
	theme    theme
	useColor bool
}

func newRenderer(out io.Writer, format string) (*renderer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = formatTable
	}
	switch format {
	case formatTable, formatJSON, formatYAML:
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format %q (want table, json or yaml)", format))
	}
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd())
	}
	return &renderer{out: out, format: format, theme: defaultTheme(), useColor: useColor}, nil
}

// structured writes value as json or yaml and reports whether it did.
func (r *renderer) structured(value any) (bool, error) {
	switch r.format {
	case formatJSON:
		encoder := json.NewEncoder(r.out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return true, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode json output").
				WithCause(err)
		}
		return true, nil
	case formatYAML:
		encoder := yaml.NewEncoder(r.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return true, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode yaml output").
				WithCause(err)
		}
		return true, encoder.Close()
	}
	return false, nil
}

func (r *renderer) style(text string, style lipgloss.Style) string {
	if !r.useColor {
		return text
	}
	return style.Render(text)
}

func (r *renderer) header(text string) {
	fmt.Fprintln(r.out, r.style(text, r.theme.Header))
}

func (r *renderer) field(key string, value string) {
	fmt.Fprintf(r.out, "%s: %s\n", r.style(key, r.theme.Key), value)
}

// table prints rows in left-aligned columns. Widths are measured on the
// unstyled text so colour codes do not skew alignment.
func (r *renderer) table(headers []string, rows [][]string, highlight func(row int) bool) {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	fmt.Fprintln(r.out, r.style(formatRow(headers, widths), r.theme.Header))
	for i, row := range rows {
		line := formatRow(row, widths)
		if highlight != nil && highlight(i) {
			line = r.style(line, r.theme.Accent)
		}
		fmt.Fprintln(r.out, line)
	}
}

func (r *renderer) empty(text string) {
	fmt.Fprintln(r.out, r.style(text, r.theme.Muted))
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 || i >= len(widths) {
			parts[i] = cell
			continue
		}
		parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}
