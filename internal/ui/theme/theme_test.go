package theme

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matemagica/matemagica/internal/exercise"
)

func sampleBatch() *exercise.Batch {
	b := &exercise.Batch{Operation: exercise.OperationAddition, Tier: exercise.TierHard}
	for i, p := range [][2]int{{23, 34}, {48, 25}} {
		e := exercise.NewExercise(exercise.OperatorAddition, exercise.TierHard, p[0], p[1])
		e.Sequence = i + 1
		b.Exercises = append(b.Exercises, e)
	}
	return b
}

func TestWriteBatch_Blanks(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBatch(&buf, "Sumas", sampleBatch(), false); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sumas", "2 ejercicios", "23 + 34 = ___", "48 + 25 = ___"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "= 57") {
		t.Errorf("answers leaked into blank sheet:\n%s", out)
	}
}

func TestWriteBatch_Answers(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBatch(&buf, "Sumas", sampleBatch(), true); err != nil {
		t.Fatalf("WriteBatch: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"57", "73", "lleva o pide prestado"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n"); got != 5 {
		t.Errorf("line count = %d, want 5:\n%s", got, out)
	}
}
