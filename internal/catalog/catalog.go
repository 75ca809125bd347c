package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Tipos de pregunta soportados por el catalogo.
const (
	TypeChoice    = "choice"
	TypeTextEntry = "text_entry"
)

// Question es una definicion inmutable del catalogo. El orden de Options es
// contrato de carga: las reglas de puntaje se refieren a posiciones, no a texto.
type Question struct {
	ID         string   `json:"id"`
	Chapter    int      `json:"chapter"`
	Text       string   `json:"text"`
	FriendText string   `json:"friendText"`
	Type       string   `json:"type"`
	Options    []string `json:"options,omitempty"`
}

// IsTextEntry indica si la pregunta es de texto libre y queda fuera de la
// comparacion de compatibilidad.
func (q Question) IsTextEntry() bool {
	return q.Type == TypeTextEntry
}

// Catalog es un indice de solo lectura sobre el set de preguntas.
// Se construye una vez y es seguro para lectura concurrente.
type Catalog struct {
	questions []Question
	byID      map[string]Question
}

// New construye un catalogo desde una lista ordenada de preguntas.
// Las pruebas lo usan para armar fixtures minimos.
func New(questions []Question) *Catalog {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Catalog{questions: questions, byID: byID}
}

//go:embed questions.json
var questionsJSON []byte

// Load parsea el catalogo embebido de produccion.
func Load() (*Catalog, error) {
	var questions []Question
	if err := json.Unmarshal(questionsJSON, &questions); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return New(questions), nil
}

// Resolve busca una pregunta por id. Un id desconocido no es un error:
// los consumidores deben saltar la pregunta.
func (c *Catalog) Resolve(id string) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// OptionIndex devuelve la posicion de value dentro de las opciones de la
// pregunta, o -1 si la pregunta no existe, no tiene opciones o el valor no
// coincide exactamente (sensible a mayusculas, sin fuzzy matching).
func (c *Catalog) OptionIndex(id, value string) int {
	if value == "" {
		return -1
	}
	q, ok := c.byID[id]
	if !ok {
		return -1
	}
	for i, opt := range q.Options {
		if opt == value {
			return i
		}
	}
	return -1
}

// Questions devuelve el set completo en orden de catalogo.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// Len devuelve la cantidad de preguntas.
func (c *Catalog) Len() int {
	return len(c.questions)
}
