package vibe

import (
	"strings"

	"github.com/simply1git/vibe-check/internal/domain"
)

// Preguntas con rol especial dentro del motor.
const (
	aestheticQuestionID  = "q1"
	toxicTraitQuestionID = "q26"
	bestMatchQuestionID  = "q1"
)

const baselineScore = 50

// statDelta es el ajuste que una opcion concreta aplica a los tres rasgos.
type statDelta struct {
	chaos     int
	social    int
	wholesome int
}

// traitRule liga una pregunta a los deltas por indice de opcion elegida.
// Las reglas son independientes entre si: todas parten de la misma base y
// los deltas simplemente se suman antes del clamp.
type traitRule struct {
	questionID string
	effects    map[int]statDelta
}

// traitRules es la tabla curada de puntaje. Las claves son posiciones dentro
// de las opciones del catalogo, nunca texto de opcion.
var traitRules = []traitRule{
	// Caos
	{questionID: "q6", effects: map[int]statDelta{
		0: {chaos: 10},  // sigue dormido
		3: {chaos: -10}, // haciendo tareas
	}},
	{questionID: "q7", effects: map[int]statDelta{
		0: {chaos: -15}, // el del itinerario
		1: {chaos: 15},  // el que se pierde
	}},
	{questionID: "q13", effects: map[int]statDelta{
		0: {chaos: 20}, // ya esta en el auto
		1: {chaos: -10},
		2: {chaos: -10},
	}},
	{questionID: "q33", effects: map[int]statDelta{
		0: {chaos: -10}, // planear
		1: {chaos: 10},  // improvisar
	}},

	// Bateria social
	{questionID: "q9", effects: map[int]statDelta{
		0: {social: 20}, // armo la pista de baile
		1: {social: -15},
		2: {social: -15},
	}},
	{questionID: "q4", effects: map[int]statDelta{
		1: {social: -10}, // zen
		2: {social: 10},  // fiesta
		3: {social: -10}, // sin bateria
	}},
	{questionID: "q30", effects: map[int]statDelta{
		0: {social: 5},  // llamada
		1: {social: -5}, // texto
	}},
	{questionID: "q31", effects: map[int]statDelta{
		0: {social: -10}, // noche en casa
		1: {social: 10},  // noche afuera
	}},

	// Ternura
	{questionID: "q15", effects: map[int]statDelta{
		1: {wholesome: -15}, // roast
		2: {wholesome: 15},  // actos de servicio
		3: {wholesome: 15},  // tiempo de calidad
	}},
	{questionID: "q24", effects: map[int]statDelta{
		0: {wholesome: -5}, // comida
		2: {wholesome: 10}, // detalles
		3: {wholesome: 10}, // honestidad
	}},
	{questionID: "q32", effects: map[int]statDelta{
		0: {wholesome: 10}, // perdonar
		1: {chaos: 5},      // olvidar y seguir
	}},

	// Banderas rojas, multi-rasgo
	{questionID: "q26", effects: map[int]statDelta{
		0: {chaos: 10, social: -5},
		1: {chaos: 5, social: -10},
		2: {social: 5, wholesome: -10},
		3: {chaos: 15, wholesome: 10},
	}},
	{questionID: "q27", effects: map[int]statDelta{
		0: {wholesome: 10},
		// El asesino: el -100 garantiza que el clamp deje wholesome en cero
		// sin importar que otras reglas hayan sumado.
		1: {chaos: 20, wholesome: -100},
		3: {wholesome: -5},
	}},
	{questionID: "q29", effects: map[int]statDelta{
		0: {chaos: 10},
		1: {chaos: -10, social: 10},
		3: {chaos: 20},
	}},
}

// archetypeRule es un predicado ordenado sobre los rasgos ya clampeados.
// El orden de la tabla es contrato: gana el primer match, de modo que los
// perfiles extremos no caigan en un balde mas laxo de mas abajo.
type archetypeRule struct {
	matches   func(domain.VibeStats) bool
	archetype string
	palette   string
}

var archetypeRules = []archetypeRule{
	{
		matches:   func(s domain.VibeStats) bool { return s.Chaos > 75 },
		archetype: "The Agent of Chaos",
		palette:   "from-red-500 to-orange-600",
	},
	{
		matches:   func(s domain.VibeStats) bool { return s.Chaos < 30 && s.Wholesome > 65 },
		archetype: "The Mom Friend",
		palette:   "from-emerald-400 to-teal-600",
	},
	{
		matches:   func(s domain.VibeStats) bool { return s.Social > 75 },
		archetype: "The Life of the Party",
		palette:   "from-pink-500 to-rose-600",
	},
	{
		matches:   func(s domain.VibeStats) bool { return s.Social < 30 && s.Wholesome > 50 },
		archetype: "The Cozy Introvert",
		palette:   "from-indigo-400 to-violet-600",
	},
	{
		matches:   func(s domain.VibeStats) bool { return s.Wholesome > 80 },
		archetype: "The Golden Retriever",
		palette:   "from-yellow-400 to-amber-600",
	},
	{
		matches:   func(s domain.VibeStats) bool { return s.Wholesome < 25 },
		archetype: "The Menace",
		palette:   "from-purple-600 to-fuchsia-900",
	},
	{
		matches:   func(s domain.VibeStats) bool { return s.Chaos < 40 && s.Social > 40 && s.Social < 70 },
		archetype: "The Chill Pill",
		palette:   "from-cyan-400 to-blue-500",
	},
	{
		matches:   func(s domain.VibeStats) bool { return s.Chaos > 60 && s.Social > 60 },
		archetype: "The Loose Cannon",
		palette:   "from-orange-500 to-fuchsia-500",
	},
}

const (
	defaultArchetype = "The Wildcard"
	defaultPalette   = "from-gray-500 to-slate-900"
)

// paletteOverride reemplaza (no mezcla) la paleta del arquetipo segun la
// respuesta estetica cruda. Es una capa cosmetica separada: nunca toca el
// arquetipo en si.
type paletteOverride struct {
	substring string
	palette   string
}

var paletteOverrides = []paletteOverride{
	{substring: "Neon", palette: "from-fuchsia-600 to-purple-900"},
	{substring: "Pastel", palette: "from-rose-200 to-sky-200 text-slate-800"},
	{substring: "Earthy", palette: "from-stone-500 to-emerald-800"},
	{substring: "Mono", palette: "from-slate-700 to-black"},
}

// classify evalua la tabla de arquetipos en orden y devuelve el primer match.
func classify(stats domain.VibeStats) (string, string) {
	for _, rule := range archetypeRules {
		if rule.matches(stats) {
			return rule.archetype, rule.palette
		}
	}
	return defaultArchetype, defaultPalette
}

// overridePalette busca la primera override que aplique a la respuesta
// estetica. Devuelve false si ninguna coincide.
func overridePalette(answerVal string) (string, bool) {
	for _, o := range paletteOverrides {
		if strings.Contains(answerVal, o.substring) {
			return o.palette, true
		}
	}
	return "", false
}
