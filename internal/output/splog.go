// Package output handles console output for the ghpro tools.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	tipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// Splog provides structured console output
type Splog struct {
	writer    io.Writer
	errWriter io.Writer
	color     bool
}

// NewSplog creates a splog writing to stdout/stderr, with color when stdout
// is a terminal
func NewSplog() *Splog {
	return &Splog{
		writer:    os.Stdout,
		errWriter: os.Stderr,
		color:     isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// NewSplogWriter creates a splog writing to w without color, for tests
func NewSplogWriter(w io.Writer) *Splog {
	return &Splog{writer: w, errWriter: w}
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, format+"\n", args...)
}

// Heading writes a bold section heading
func (s *Splog) Heading(format string, args ...interface{}) {
	s.Info("%s", s.style(headingStyle, fmt.Sprintf(format, args...)))
}

// Dim writes a de-emphasized message
func (s *Splog) Dim(format string, args ...interface{}) {
	s.Info("%s", s.style(dimStyle, fmt.Sprintf(format, args...)))
}

// Warn writes a warning message to stderr
func (s *Splog) Warn(format string, args ...interface{}) {
	fmt.Fprintf(s.errWriter, "%s\n", s.style(warnStyle, fmt.Sprintf(format, args...)))
}

// Tip writes a hint about what to do next
func (s *Splog) Tip(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, "%s\n", s.style(tipStyle, fmt.Sprintf(format, args...)))
}

// Newline writes a newline
func (s *Splog) Newline() {
	fmt.Fprintln(s.writer)
}

// Writer returns the underlying output writer
func (s *Splog) Writer() io.Writer {
	return s.writer
}

func (s *Splog) style(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}
