package reply

import (
	"math/rand/v2"
	"strings"
)

const (
	advisorPrefix = "[Asesor Médico-Veterinario] Hola, soy tu asesor de Aerocámaras Plegables en Chile. " +
		"Te acompaño paso a paso para recomendar el tamaño correcto y cerrar tu compra de forma segura y rápida. "
	sellerPrefix = "[Vendedor Amable] ¡Excelente! Te explico en simple y vamos atajando dudas. "
)

// Picker returns an index in [0, n).
type Picker func(n int) int

// Styler applies the bot's voice to plain content.
type Styler struct {
	pick Picker
}

// NewStyler uses pick to choose among phrasing variants; nil picks at random.
func NewStyler(pick Picker) *Styler {
	if pick == nil {
		pick = rand.IntN
	}
	return &Styler{pick: pick}
}

// First always picks the first variant, which keeps replies stable in tests.
func First(int) int { return 0 }

// Greeting introduces the advisor and asks person or pet.
func (s *Styler) Greeting() string {
	return advisorPrefix + sellerPrefix + s.Pick(greetingQuestions)
}

func (s *Styler) Wrap(text string) string {
	return sellerPrefix + strings.TrimSpace(text)
}

// Pick returns one of variants; an empty set gives "".
func (s *Styler) Pick(variants []string) string {
	if len(variants) == 0 {
		return ""
	}
	i := s.pick(len(variants))
	if i < 0 || i >= len(variants) {
		i = 0
	}
	return variants[i]
}
