package vibe

import (
	"github.com/simply1git/vibe-check/internal/catalog"
	"github.com/simply1git/vibe-check/internal/domain"
)

// Engine calcula perfiles de vibra y compatibilidad sobre un catalogo fijo.
// Es puro y sin estado mutable: seguro para llamadas concurrentes.
type Engine struct {
	catalog *catalog.Catalog
}

func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Analyze deriva el perfil de vibra desde las respuestas de un miembro.
// Nunca falla: respuestas ausentes o que no matchean ninguna opcion
// simplemente no aportan delta.
func (e *Engine) Analyze(answers domain.AnswerMap) domain.VibeProfile {
	chaos, social, wholesome := baselineScore, baselineScore, baselineScore

	for _, rule := range traitRules {
		ans, ok := answers[rule.questionID]
		if !ok {
			continue
		}
		idx := e.catalog.OptionIndex(rule.questionID, ans.Val)
		if idx < 0 {
			continue
		}
		delta, ok := rule.effects[idx]
		if !ok {
			continue
		}
		chaos += delta.chaos
		social += delta.social
		wholesome += delta.wholesome
	}

	stats := domain.VibeStats{
		Chaos:     clamp(chaos),
		Social:    clamp(social),
		Wholesome: clamp(wholesome),
	}

	archetype, palette := classify(stats)
	if ans, ok := answers[aestheticQuestionID]; ok {
		if p, matched := overridePalette(ans.Val); matched {
			palette = p
		}
	}

	profile := domain.VibeProfile{
		Archetype:    archetype,
		Stats:        stats,
		ColorPalette: palette,
		BestMatchQ:   bestMatchQuestionID,
	}
	if ans, ok := answers[toxicTraitQuestionID]; ok {
		profile.SignatureTrait = ans.Val
	}
	return profile
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
