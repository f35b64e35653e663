package problemgen

import (
	"fmt"
	"strings"

	"github.com/matemagica/matemagica/internal/exercise"
)

const systemPrompt = `Eres un maestro de primaria que prepara fichas de cálculo para niños de 7 a 9 años.

Reglas:
- Genera exactamente la cantidad de ejercicios pedida.
- Todos los números son de dos cifras (entre 10 y 99).
- En las restas el primer número es siempre el mayor; el resultado nunca es negativo.
- Usa "+" para sumar y "-" para restar.
- El campo "result" debe ser el resultado correcto.
- Respeta la regla de llevadas indicada para la dificultad.
- No repitas ningún ejercicio de la lista "ya generados" ni dentro de la misma respuesta.
- Responde solo con JSON.`

var operationLabels = map[exercise.Operation]string{
	exercise.OperationAddition:    "sumas",
	exercise.OperationSubtraction: "restas",
	exercise.OperationMixed:       "sumas y restas mezcladas (aproximadamente la mitad de cada una)",
}

var tierRules = map[exercise.Tier]string{
	exercise.TierEasy: "fácil: sin llevadas. En las sumas las unidades suman menos de 10 y el total no pasa de 99. " +
		"En las restas las unidades del primer número son mayores o iguales que las del segundo.",
	exercise.TierMedium: "medio: todas con llevadas. En las sumas las unidades suman 10 o más. " +
		"En las restas las unidades del primer número son menores que las del segundo.",
	exercise.TierHard: "difícil: mezcla ejercicios con y sin llevadas, más o menos la mitad de cada tipo.",
}

// buildUserMessage describes one batch request and the exercises to avoid.
func buildUserMessage(req exercise.Request, prior []string, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Genera %d ejercicios.\n", req.Count)
	fmt.Fprintf(&b, "Tipo: %s\n", operationLabels[req.Operation])
	fmt.Fprintf(&b, "Dificultad: %s\n", tierRules[req.Tier])

	b.WriteString("\nYa generados:\n")
	b.WriteString(buildAvoidList(prior, cfg.MaxPriorExercises))

	return b.String()
}
