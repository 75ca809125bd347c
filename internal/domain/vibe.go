package domain

// Answer es la respuesta de un miembro a una pregunta del cuestionario.
// IsCustom marca que el texto fue escrito a mano en vez de elegido de la lista;
// solo importa para presentacion, nunca para el calculo de rasgos.
type Answer struct {
	Val      string `json:"val"`
	IsCustom bool   `json:"isCustom"`
}

// AnswerMap mapea id de pregunta a la respuesta del miembro.
// El motor de vibra lo trata como entrada de solo lectura.
type AnswerMap map[string]Answer

// VibeStats son los tres rasgos normalizados a [0,100].
type VibeStats struct {
	Chaos     int `json:"chaos"`     // Espontaneo/Caotico vs. Organizado
	Social    int `json:"social"`    // Fiesta vs. Casa
	Wholesome int `json:"wholesome"` // Tierno/Servicial vs. Roast
}

// VibeProfile es el perfil derivado de un AnswerMap.
// Se recalcula en cada lectura; nunca se persiste como registro propio.
type VibeProfile struct {
	Archetype      string    `json:"archetype"`
	Stats          VibeStats `json:"stats"`
	ColorPalette   string    `json:"color_palette"`
	BestMatchQ     string    `json:"best_match_q"`
	SignatureTrait string    `json:"signature_trait,omitempty"`
}
