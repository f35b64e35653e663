package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/exercise"
	"github.com/matemagica/matemagica/internal/ui/theme"
	"github.com/matemagica/matemagica/internal/worksheet"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a batch of exercises",
	Example: `  matemagica generate --op suma --tier facil --count 20
  matemagica generate --op mixed --tier hard --source enhanced --pdf hoja.pdf --name Ana
  matemagica generate --op resta --tier medio --count 10 --seed 42 --format csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		req, err := generateRequest(cmd, e)
		if err != nil {
			return err
		}

		seed, _ := cmd.Flags().GetUint64("seed")
		gen, err := e.generator(cmd, seed)
		if err != nil {
			return err
		}

		batch, err := gen.GenerateBatch(cmd.Context(), req.op, req.tier, req.count, req.source)
		if err != nil {
			return err
		}
		e.log.Debug("batch generated", "id", batch.ID, "count", batch.Len())

		name, _ := cmd.Flags().GetString("name")
		answers, _ := cmd.Flags().GetBool("answers")
		if err := writeBatch(cmd.OutOrStdout(), req.format, batch, name, answers); err != nil {
			return err
		}

		if pdfPath, _ := cmd.Flags().GetString("pdf"); pdfPath != "" {
			if err := writePDFFile(pdfPath, batch, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Worksheet written to %s\n", pdfPath)
		}
		return nil
	},
}

type generateParams struct {
	op     exercise.Operation
	tier   exercise.Tier
	count  int
	source exercise.Source
	format string
}

// generateRequest merges flags over the generate defaults from config.
func generateRequest(cmd *cobra.Command, e *env) (generateParams, error) {
	flags := cmd.Flags()
	str := func(name, fallback string) string {
		if flags.Changed(name) {
			v, _ := flags.GetString(name)
			return v
		}
		return fallback
	}

	var (
		p   generateParams
		err error
	)
	if p.op, err = exercise.ParseOperation(str("op", e.cfg.Generate.Operation)); err != nil {
		return p, err
	}
	if p.tier, err = exercise.ParseTier(str("tier", e.cfg.Generate.Tier)); err != nil {
		return p, err
	}
	if p.source, err = exercise.ParseSource(str("source", e.cfg.Generate.Source)); err != nil {
		return p, err
	}

	p.count = e.cfg.Generate.Count
	if flags.Changed("count") {
		p.count, _ = flags.GetInt("count")
	}

	p.format, _ = flags.GetString("format")
	switch p.format {
	case "text", "json", "csv":
	default:
		return p, fmt.Errorf("%w: unknown format %q (want text, json or csv)", exercise.ErrInvalidArgument, p.format)
	}
	return p, nil
}

func writeBatch(w io.Writer, format string, b *exercise.Batch, name string, answers bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case "csv":
		return worksheet.WriteCSV(w, b)
	default:
		return theme.WriteBatch(w, worksheet.Title(b, name), b, answers)
	}
}

func writePDFFile(path string, b *exercise.Batch, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	opts := worksheet.DefaultOptions()
	opts.StudentName = name
	if err := worksheet.WritePDF(f, b, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	f := generateCmd.Flags()
	f.StringP("op", "o", "", "Operation: addition, subtraction or mixed (suma, resta, mixto)")
	f.StringP("tier", "t", "", "Difficulty: easy, medium or hard (facil, medio, dificil)")
	f.IntP("count", "n", 0, "Number of exercises")
	f.StringP("source", "s", "", "Source: local or enhanced")
	f.Uint64("seed", 0, "Seed for reproducible batches (0 picks a random seed)")
	f.StringP("format", "f", "text", "Output format: text, json or csv")
	f.String("pdf", "", "Also write a printable worksheet to this file")
	f.String("name", "", "Student name printed on the worksheet")
	f.BoolP("answers", "a", false, "Show results in text output")
}
