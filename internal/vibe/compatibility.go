package vibe

import (
	"math"

	"github.com/simply1git/vibe-check/internal/domain"
)

// Compatibility calcula el porcentaje de match entre dos miembros sobre las
// preguntas comparables (no texto libre) que ambos respondieron. Devuelve 0
// si no comparten ninguna; es simetrica porque la comparacion es igualdad.
func (e *Engine) Compatibility(mine, theirs domain.AnswerMap) int {
	matches, total := 0, 0
	for _, q := range e.catalog.Questions() {
		if q.IsTextEntry() {
			continue
		}
		a, okA := mine[q.ID]
		b, okB := theirs[q.ID]
		if !okA || !okB || a.Val == "" || b.Val == "" {
			continue
		}
		total++
		if a.Val == b.Val {
			matches++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(matches) / float64(total) * 100))
}
