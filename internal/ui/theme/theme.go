// Package theme holds the terminal styles of the CLI text output.
package theme

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/exercise"
)

// Color palette, bright but readable on light and dark terminals.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Number = lipgloss.NewStyle().
		Foreground(Secondary)

	Answer = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Regrouping = lipgloss.NewStyle().
			Foreground(Accent)

	Failure = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Rule = lipgloss.NewStyle().
		Foreground(Border)
)

// WriteBatch prints b as a numbered list. With answers the result is shown
// instead of a blank. lipgloss drops the colors when w is not a terminal.
func WriteBatch(w io.Writer, title string, b *exercise.Batch, answers bool) error {
	if _, err := lipgloss.Fprintln(w, Title.Render(title)); err != nil {
		return err
	}
	if _, err := lipgloss.Fprintln(w, Subtitle.Render(fmt.Sprintf("%d ejercicios", b.Len()))); err != nil {
		return err
	}

	for _, e := range b.Exercises {
		line := fmt.Sprintf("%s %d %s %d = ",
			Number.Render(fmt.Sprintf("%2d)", e.Sequence)),
			e.Operands[0], e.Operator.Symbol(), e.Operands[1])
		if answers {
			line += Answer.Render(fmt.Sprint(e.Result))
			if e.Regrouping() {
				line += " " + Regrouping.Render("*")
			}
		} else {
			line += "___"
		}
		if _, err := lipgloss.Fprintln(w, line); err != nil {
			return err
		}
	}

	if answers {
		_, err := lipgloss.Fprintln(w, Hint.Render("* lleva o pide prestado"))
		return err
	}
	return nil
}
