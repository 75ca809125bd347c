package vibe

import "math/rand/v2"

// MaxDistractors es el tope de opciones incorrectas por pregunta de quiz.
const MaxDistractors = 3

// SelectDistractors elige hasta tres respuestas incorrectas plausibles:
// primero del pool de respuestas reales de otros miembros, y si no alcanza,
// rellena con las opciones enlatadas de la pregunta. El resultado nunca
// contiene la respuesta correcta ni duplicados, y llega en orden aleatorio.
// Menos de tres distractores es un resultado valido cuando el material es
// escaso. Usa math/rand/v2 a nivel de paquete, seguro para uso concurrente.
func SelectDistractors(correct string, pool []string, fallback []string) []string {
	seen := make(map[string]struct{}, len(pool))
	candidates := make([]string, 0, len(pool))
	for _, v := range pool {
		if v == "" || v == correct {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		candidates = append(candidates, v)
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > MaxDistractors {
		candidates = candidates[:MaxDistractors]
	}
	if len(candidates) == MaxDistractors {
		return candidates
	}

	picked := make(map[string]struct{}, len(candidates))
	for _, v := range candidates {
		picked[v] = struct{}{}
	}
	rest := make([]string, 0, len(fallback))
	for _, opt := range fallback {
		if opt == "" || opt == correct {
			continue
		}
		if _, dup := picked[opt]; dup {
			continue
		}
		picked[opt] = struct{}{}
		rest = append(rest, opt)
	}
	rand.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	needed := MaxDistractors - len(candidates)
	if needed > len(rest) {
		needed = len(rest)
	}
	return append(candidates, rest[:needed]...)
}
