package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/simply1git/vibe-check/internal/catalog"
	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/vibe"
)

// Analiza un archivo de respuestas sin levantar el servidor:
//
//	vibe -answers respuestas.json
//
// El archivo es un JSON {"q1": {"val": "..."}, ...}.
func main() {
	answersPath := flag.String("answers", "", "ruta al JSON de respuestas")
	flag.Parse()

	if *answersPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*answersPath)
	if err != nil {
		log.Fatal(err)
	}

	var answers domain.AnswerMap
	if err := json.Unmarshal(raw, &answers); err != nil {
		log.Fatalf("parse answers: %v", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	profile := vibe.NewEngine(cat).Analyze(answers)

	fmt.Printf("Archetype:  %s\n", profile.Archetype)
	fmt.Printf("Chaos:      %d\n", profile.Stats.Chaos)
	fmt.Printf("Social:     %d\n", profile.Stats.Social)
	fmt.Printf("Wholesome:  %d\n", profile.Stats.Wholesome)
	fmt.Printf("Palette:    %s\n", profile.ColorPalette)
	if profile.SignatureTrait != "" {
		fmt.Printf("Signature:  %s\n", profile.SignatureTrait)
	}
}
