package service

import (
	"fmt"
	"math/rand/v2"
)

var slugAdjectives = []string{
	"happy", "lucky", "sunny", "clever", "brave", "calm", "eager", "fancy", "jolly", "kind",
	"lively", "nice", "proud", "silly", "witty", "active", "alert", "bold", "cool", "fair",
}

var slugNouns = []string{
	"panda", "tiger", "eagle", "shark", "whale", "lion", "wolf", "bear", "hawk", "fox",
	"otter", "seal", "swan", "duck", "owl", "frog", "goat", "deer", "cat", "dog",
}

// GenerateSlug produce un identificador legible tipo "happy-panda-42".
// No garantiza unicidad por si solo; el indice unico de groups.slug la impone.
func GenerateSlug() string {
	adj := slugAdjectives[rand.IntN(len(slugAdjectives))]
	noun := slugNouns[rand.IntN(len(slugNouns))]
	num := rand.IntN(99) + 1
	return fmt.Sprintf("%s-%s-%d", adj, noun, num)
}
