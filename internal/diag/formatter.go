package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Formatter renders diagnostics with a source snippet and caret underline.
// Sources are registered in memory so the formatter works for files and for
// interactive input alike.
type Formatter struct {
	out     io.Writer
	color   bool
	sources map[string]string
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithColor forces colored output on or off, overriding TTY detection.
func WithColor(enabled bool) Option {
	return func(f *Formatter) {
		f.color = enabled
	}
}

// NewFormatter creates a formatter writing to out. Color is enabled when out
// is a terminal and NO_COLOR is unset.
func NewFormatter(out io.Writer, opts ...Option) *Formatter {
	f := &Formatter{
		out:     out,
		color:   defaultColor(out),
		sources: make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func defaultColor(out io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// SetSource registers (or replaces) the source text for a filename. The REPL
// re-registers its pseudo-file on every line.
func (f *Formatter) SetSource(filename, src string) {
	f.sources[filename] = src
}

// LoadSource reads and registers source text from disk.
func (f *Formatter) LoadSource(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	f.sources[filename] = string(data)
	return nil
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func (f *Formatter) styled(style lipgloss.Style, s string) string {
	if !f.color {
		return s
	}
	return style.Render(s)
}

func severityStyle(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityWarning:
		return warningStyle
	case SeverityNote:
		return noteStyle
	default:
		return errorStyle
	}
}

// Format prints one diagnostic: a header line, and when the span resolves to
// registered source, the offending line with a caret underline.
func (f *Formatter) Format(d Diagnostic) {
	f.printHeader(d)

	src, ok := f.sources[d.Span.Filename]
	if !ok || !d.Span.IsValid() {
		return
	}

	lines := strings.Split(src, "\n")
	if d.Span.Line > len(lines) {
		return
	}
	line := strings.TrimRight(lines[d.Span.Line-1], "\r")

	gutter := fmt.Sprintf("%d", d.Span.Line)
	pad := strings.Repeat(" ", len(gutter))

	fmt.Fprintf(f.out, "%s %s\n", pad, f.styled(gutterStyle, "-->")+" "+d.Span.String())
	fmt.Fprintf(f.out, "%s %s\n", pad, f.styled(gutterStyle, "|"))
	fmt.Fprintf(f.out, "%s %s %s\n", f.styled(gutterStyle, gutter), f.styled(gutterStyle, "|"), line)

	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	if width > len(line)-(d.Span.Column-1) {
		width = len(line) - (d.Span.Column - 1)
		if width < 1 {
			width = 1
		}
	}
	underline := strings.Repeat(" ", d.Span.Column-1) + strings.Repeat("^", width)
	fmt.Fprintf(f.out, "%s %s %s\n", pad, f.styled(gutterStyle, "|"), f.styled(caretStyle, underline))
}

func (f *Formatter) printHeader(d Diagnostic) {
	sev := d.Severity
	if sev == "" {
		sev = SeverityError
	}

	head := string(sev)
	if d.Code != "" {
		head += "[" + string(d.Code) + "]"
	}
	fmt.Fprintf(f.out, "%s: %s\n", f.styled(severityStyle(sev), head), d.Message)
}

// FormatAll prints every diagnostic in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for _, d := range ds {
		f.Format(d)
	}
}
