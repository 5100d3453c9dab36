// Package render writes view output to the terminal, either as styled text
// or as JSON/YAML documents of the underlying API payloads.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: text, json, yaml)", ErrUnknownFormat, s)
	}
}

type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Label   lipgloss.Style
	Link    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Box     lipgloss.Style
}

func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")), // Orange
		Heading: r.NewStyle().
			Bold(true),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Label: r.NewStyle().
			Foreground(lipgloss.Color("245")),
		Link: r.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Underline(true),
		Success: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Error: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Warning: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1),
	}
}

// PlainStyles render text unchanged apart from the box border.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Heading: plain,
		Muted:   plain,
		Label:   plain,
		Link:    plain,
		Success: plain,
		Error:   plain,
		Warning: plain,
		Box:     plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

// Renderer is not safe for concurrent use.
type Renderer struct {
	w      io.Writer
	format Format
	styles Styles
}

// New returns a Renderer writing to w. With color set, styles are chosen
// for the colour profile lipgloss detects on w.
func New(w io.Writer, format Format, color bool) *Renderer {
	styles := PlainStyles()
	if color {
		styles = DefaultStyles(lipgloss.NewRenderer(w))
	}
	return &Renderer{w: w, format: format, styles: styles}
}

func (r *Renderer) Format() Format    { return r.format }
func (r *Renderer) Styles() Styles    { return r.styles }
func (r *Renderer) Writer() io.Writer { return r.w }

// Data writes v as a document in JSON or YAML mode, and calls text
// otherwise.
func (r *Renderer) Data(v any, text func()) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		text()
		return nil
	}
}

// Notice is how status messages appear in JSON/YAML output.
type Notice struct {
	Level   string `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

func (r *Renderer) notice(level string, style lipgloss.Style, prefix, msg string) {
	_ = r.Data(Notice{Level: level, Message: msg}, func() {
		fmt.Fprintln(r.w, style.Render(prefix+msg))
	})
}

func (r *Renderer) Success(msg string) { r.notice("success", r.styles.Success, "✓ ", msg) }
func (r *Renderer) Error(msg string)   { r.notice("error", r.styles.Error, "✗ ", msg) }
func (r *Renderer) Warning(msg string) { r.notice("warning", r.styles.Warning, "! ", msg) }
func (r *Renderer) Info(msg string)    { r.notice("info", r.styles.Muted, "", msg) }

// The helpers below only produce output in text mode.

func (r *Renderer) Title(s string) {
	if r.format == FormatText {
		fmt.Fprintln(r.w, r.styles.Title.Render(s))
	}
}

func (r *Renderer) Heading(s string) {
	if r.format == FormatText {
		fmt.Fprintln(r.w, r.styles.Heading.Render(s))
	}
}

func (r *Renderer) Line(format string, args ...any) {
	if r.format == FormatText {
		fmt.Fprintf(r.w, format+"\n", args...)
	}
}

func (r *Renderer) Muted(format string, args ...any) {
	if r.format == FormatText {
		fmt.Fprintln(r.w, r.styles.Muted.Render(fmt.Sprintf(format, args...)))
	}
}

// Field prints "label: value" with the label dimmed.
func (r *Renderer) Field(label string, value any) {
	if r.format == FormatText {
		fmt.Fprintf(r.w, "%s %v\n", r.styles.Label.Render(label+":"), value)
	}
}

func (r *Renderer) Link(url string) string {
	return r.styles.Link.Render(url)
}

func (r *Renderer) Box(lines ...string) {
	if r.format == FormatText {
		fmt.Fprintln(r.w, r.styles.Box.Render(strings.Join(lines, "\n")))
	}
}

// Table prints rows under headers with a plain border.
func (r *Renderer) Table(headers []string, rows [][]string) {
	if r.format != FormatText {
		return
	}
	header := r.styles.Heading.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.Muted).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(r.w, t.Render())
}

func (r *Renderer) Blank() {
	if r.format == FormatText {
		fmt.Fprintln(r.w)
	}
}
