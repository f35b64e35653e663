package problemgen

import (
	"fmt"
	"strings"
)

// buildAvoidList formats the most recent max prior exercises for the
// prompt. It returns "Ninguno" when there are none.
func buildAvoidList(prior []string, max int) string {
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	if len(prior) == 0 {
		return "Ninguno"
	}

	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}

// dedupKey identifies an exercise regardless of how the model spelled
// the operator.
func dedupKey(c Candidate) string {
	o, _ := c.operator()
	return fmt.Sprintf("%d%s%d", c.First, o.Symbol(), c.Second)
}
