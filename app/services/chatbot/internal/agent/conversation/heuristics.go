package conversation

import (
	"strings"
	"unicode"

	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/intent"
	"AeroBot/app/services/chatbot/internal/agent/locality"
	"AeroBot/app/services/chatbot/internal/agent/textnorm"
)

type sizeTokens struct {
	size  string
	words []string
	// letter is a one letter size label ("s", "m", "l") matched as a whole word
	letter string
}

// checked in order; the first family token found wins
var (
	humanSizes = []sizeTokens{
		{size: catalog.SizePediatric, words: textnorm.NormalizeAll([]string{"pediatr", "niño", "niña", "hijo", "hija", "bebé", "guagua", "infantil"})},
		{size: catalog.SizeAdult, words: textnorm.NormalizeAll([]string{"adult"})},
	}
	petSizes = []sizeTokens{
		{size: catalog.SizePetSmall, words: textnorm.NormalizeAll([]string{"gato", "gata", "pequeño", "pequeña", "chico", "chica", "talla s"}), letter: "s"},
		{size: catalog.SizePetMedium, words: textnorm.NormalizeAll([]string{"mediano", "mediana", "talla m"}), letter: "m"},
		{size: catalog.SizePetLarge, words: textnorm.NormalizeAll([]string{"grande", "talla l"}), letter: "l"},
	}

	humanFamilyWords = textnorm.NormalizeAll([]string{"humana", "humano", "persona", "adult", "pediatr", "niño", "niña", "bebé", "para mí", "hijo", "hija"})
	petFamilyWords   = textnorm.NormalizeAll([]string{"mascota", "perro", "perrit", "gato", "gatit", "veterinari", "animal"})
)

var intentSizes = map[intent.Intent]struct {
	family catalog.Family
	size   string
}{
	intent.ProductAdult:     {catalog.FamilyHuman, catalog.SizeAdult},
	intent.ProductPediatric: {catalog.FamilyHuman, catalog.SizePediatric},
	intent.ProductPetSmall:  {catalog.FamilyPet, catalog.SizePetSmall},
	intent.ProductPetMedium: {catalog.FamilyPet, catalog.SizePetMedium},
	intent.ProductPetLarge:  {catalog.FamilyPet, catalog.SizePetLarge},
}

func sizesOf(f catalog.Family) []sizeTokens {
	if f == catalog.FamilyPet {
		return petSizes
	}
	return humanSizes
}

func scanSize(norm string, f catalog.Family, letters bool) string {
	for _, st := range sizesOf(f) {
		if textnorm.ContainsAny(norm, st.words) {
			return st.size
		}
		if letters && st.letter != "" && textnorm.HasWord(norm, st.letter) {
			return st.size
		}
	}
	return ""
}

// pickProduct resolves the product the message asks for. Tokens of the
// current family win, then a product intent, then tokens of any family.
// Bare size letters only count while shopping for pets.
func (d *Driver) pickProduct(t *turn, family catalog.Family) (catalog.Product, bool, error) {
	var (
		f    catalog.Family
		size string
	)
	if family != "" {
		f, size = family, scanSize(t.norm, family, family == catalog.FamilyPet)
	}
	if size == "" {
		if is, ok := intentSizes[t.intent]; ok {
			f, size = is.family, is.size
		}
	}
	if size == "" {
		for _, other := range []catalog.Family{catalog.FamilyHuman, catalog.FamilyPet} {
			if other == family {
				continue
			}
			if s := scanSize(t.norm, other, false); s != "" {
				f, size = other, s
				break
			}
		}
	}
	if size == "" {
		return catalog.Product{}, false, nil
	}
	p, err := d.catalog.BySize(f, size)
	if err != nil {
		return catalog.Product{}, false, err
	}
	return p, true, nil
}

// familyOf decides the family a qualifying message points at, or "".
func familyOf(t *turn) catalog.Family {
	switch t.intent {
	case intent.WantHuman:
		return catalog.FamilyHuman
	case intent.WantPet:
		return catalog.FamilyPet
	}
	if is, ok := intentSizes[t.intent]; ok {
		return is.family
	}
	switch {
	case textnorm.ContainsAny(t.norm, humanFamilyWords):
		return catalog.FamilyHuman
	case textnorm.ContainsAny(t.norm, petFamilyWords):
		return catalog.FamilyPet
	}
	return ""
}

// sniffable intents carry no question, so the text is read as contact data.
func sniffable(in intent.Intent) bool {
	switch in {
	case intent.Unknown, intent.WantHuman, intent.WantPet:
		return true
	}
	return in.IsProduct()
}

// steering intents move the conversation and are never read as a name.
func steering(in intent.Intent) bool {
	switch in {
	case intent.Finalize, intent.Handoff, intent.NewOrder, intent.GoBack,
		intent.Greet, intent.AddUnit, intent.SendData, intent.ProductInfo:
		return true
	}
	return false
}

// looksLikeName reports two to four capitalized words with no question mark,
// such as "Ana Cuesta", even when a word contains a sales keyword.
func looksLikeName(text string) bool {
	if strings.ContainsAny(text, "?¿") {
		return false
	}
	words := strings.Fields(text)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		rs := []rune(w)
		if !unicode.IsUpper(rs[0]) {
			return false
		}
		for _, r := range rs {
			if !unicode.IsLetter(r) && r != '\'' && r != '-' && r != '.' {
				return false
			}
		}
	}
	return true
}

// looksLikeContact reports text that is an email, a phone or a known place,
// which wins over any keyword it happens to contain.
func looksLikeContact(text string) bool {
	if isEmail(text) || isPhone(text) {
		return true
	}
	_, ok := locality.Detect(text)
	return ok
}

func isEmail(text string) bool {
	return strings.Contains(text, "@") && strings.Contains(text, ".")
}

func isPhone(text string) bool {
	stripped := strings.NewReplacer("+", "", "-", "", " ", "").Replace(strings.TrimSpace(text))
	if len(stripped) < 8 {
		return false
	}
	return strings.IndexFunc(stripped, unicode.IsDigit) >= 0
}

// fillContact applies the first heuristic that recognizes the text: email,
// locality, phone, then name. Filled fields are never overwritten.
func (d *Driver) fillContact(t *turn) {
	text := strings.TrimSpace(t.text)
	c := &t.c
	if isEmail(text) {
		if c.Email == "" {
			c.Email = text
			t.dirty = true
		}
		return
	}
	if loc, ok := locality.Detect(text); ok {
		if c.City == "" {
			c.City = loc.Name
			c.Zone = string(loc.Zone)
			t.dirty = true
		}
		return
	}
	if isPhone(text) {
		if c.Phone == "" {
			c.Phone = text
			t.dirty = true
		}
		return
	}
	if c.Name == "" && len([]rune(text)) >= 3 {
		c.Name = text
		t.dirty = true
	}
}
