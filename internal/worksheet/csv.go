package worksheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matemagica/matemagica/internal/exercise"
)

var csvHeader = []string{"numero", "operacion", "primer_numero", "segundo_numero", "resultado", "dificultad"}

// WriteCSV writes one row per exercise, preceded by a header row.
func WriteCSV(w io.Writer, b *exercise.Batch) error {
	if b == nil {
		return fmt.Errorf("write csv: nil batch")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range b.Exercises {
		row := []string{
			strconv.Itoa(e.Sequence),
			operatorLabel(e.Operator),
			strconv.Itoa(e.Operands[0]),
			strconv.Itoa(e.Operands[1]),
			strconv.Itoa(e.Result),
			TierLabel(e.Tier),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.Sequence, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
