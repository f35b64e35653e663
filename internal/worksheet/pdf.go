package worksheet

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	"github.com/matemagica/matemagica/internal/exercise"
)

// Options controls the PDF layout.
type Options struct {
	// StudentName is printed in the title when set.
	StudentName string
	PageSize    string
	MarginsMM   float64
	FontFamily  string
	// Columns is the number of exercise columns per page.
	Columns int
	// AnswerKey appends a page with the solved exercises.
	AnswerKey bool
}

// DefaultOptions returns an A4, two-column sheet with an answer key.
func DefaultOptions() Options {
	return Options{
		PageSize:   "A4",
		MarginsMM:  15,
		FontFamily: "Helvetica",
		Columns:    2,
		AnswerKey:  true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PageSize == "" {
		o.PageSize = d.PageSize
	}
	if o.MarginsMM <= 0 {
		o.MarginsMM = d.MarginsMM
	}
	if o.FontFamily == "" {
		o.FontFamily = d.FontFamily
	}
	if o.Columns < 1 {
		o.Columns = d.Columns
	}
	return o
}

// Title returns the worksheet heading for b, e.g.
// "Ana: Sumas Y Restas (Nivel Difícil)".
func Title(b *exercise.Batch, student string) string {
	t := fmt.Sprintf("%s (nivel %s)", OperationLabel(b.Operation), TierLabel(b.Tier))
	if student != "" {
		t = student + ": " + t
	}
	return titleCase.String(t)
}

// WritePDF renders b as a printable worksheet.
func WritePDF(w io.Writer, b *exercise.Batch, opts Options) error {
	if b == nil {
		return fmt.Errorf("write pdf: nil batch")
	}
	opts = opts.withDefaults()

	pdf := fpdf.New("P", "mm", opts.PageSize, "")
	pdf.SetMargins(opts.MarginsMM, opts.MarginsMM, opts.MarginsMM)
	// Core fonts are cp1252; accents in the Spanish labels need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := Title(b, opts.StudentName)
	pdf.SetTitle(title, true)
	pdf.SetAuthor("Matemágica", true)

	pdf.AddPage()
	pdf.SetFont(opts.FontFamily, "B", 20)
	pdf.CellFormat(0, 15, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont(opts.FontFamily, "", 10)
	pdf.CellFormat(0, 6, tr("Nombre: ____________________   Fecha: ____________"), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont(opts.FontFamily, "", 14)
	writeGrid(pdf, b.Exercises, opts.Columns, func(e exercise.Exercise) string {
		return fmt.Sprintf("%d)  %s", e.Sequence, e.Prompt())
	})

	if opts.AnswerKey {
		pdf.AddPage()
		pdf.SetFont(opts.FontFamily, "B", 18)
		pdf.CellFormat(0, 15, tr(title+" - Respuestas"), "", 1, "C", false, 0, "")
		pdf.Ln(8)
		pdf.SetFont(opts.FontFamily, "", 12)
		writeGrid(pdf, b.Exercises, opts.Columns, func(e exercise.Exercise) string {
			return fmt.Sprintf("%d)  %s", e.Sequence, e.String())
		})
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// writeGrid lays exercises out row by row across cols columns.
func writeGrid(pdf *fpdf.Fpdf, exercises []exercise.Exercise, cols int, text func(exercise.Exercise) string) {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	cellW := (pageW - left - right) / float64(cols)

	for i, e := range exercises {
		newLine := 0
		if (i+1)%cols == 0 || i == len(exercises)-1 {
			newLine = 1
		}
		pdf.CellFormat(cellW, 12, text(e), "", newLine, "L", false, 0, "")
	}
}
