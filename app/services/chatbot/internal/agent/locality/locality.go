package locality

import (
	"strings"
	"unicode"

	"AeroBot/app/services/chatbot/internal/agent/textnorm"
)

type Zone string

const (
	ZoneRM         Zone = "rm"
	ZoneValparaiso Zone = "valparaiso"
	ZoneBiobio     Zone = "biobio"
	ZoneRegiones   Zone = "regiones"
)

type Locality struct {
	Name string
	Zone Zone
}

type place struct {
	name    string
	aliases []string
}

type group struct {
	zone   Zone
	places []place
}

// groups are scanned in order; the first alias found wins.
var groups = []group{
	{ZoneRM, []place{
		{"Región Metropolitana", []string{"region metropolitana", "rm"}},
		{"Santiago", []string{"santiago", "stgo"}},
		{"Providencia", []string{"providencia"}},
		{"Las Condes", []string{"las condes"}},
		{"Ñuñoa", []string{"nunoa"}},
		{"Vitacura", []string{"vitacura"}},
		{"Lo Barnechea", []string{"lo barnechea"}},
		{"La Reina", []string{"la reina"}},
		{"Peñalolén", []string{"penalolen"}},
		{"Macul", []string{"macul"}},
		{"La Florida", []string{"la florida"}},
		{"Puente Alto", []string{"puente alto"}},
		{"Maipú", []string{"maipu"}},
		{"Cerrillos", []string{"cerrillos"}},
		{"Estación Central", []string{"estacion central"}},
		{"Quinta Normal", []string{"quinta normal"}},
		{"Recoleta", []string{"recoleta"}},
		{"Independencia", []string{"independencia"}},
		{"Conchalí", []string{"conchali"}},
		{"Huechuraba", []string{"huechuraba"}},
		{"Quilicura", []string{"quilicura"}},
		{"Renca", []string{"renca"}},
		{"Pudahuel", []string{"pudahuel"}},
		{"Lo Prado", []string{"lo prado"}},
		{"Cerro Navia", []string{"cerro navia"}},
		{"San Miguel", []string{"san miguel"}},
		{"San Joaquín", []string{"san joaquin"}},
		{"La Cisterna", []string{"la cisterna"}},
		{"El Bosque", []string{"el bosque"}},
		{"La Granja", []string{"la granja"}},
		{"La Pintana", []string{"la pintana"}},
		{"San Bernardo", []string{"san bernardo"}},
		{"San Ramón", []string{"san ramon"}},
		{"Lo Espejo", []string{"lo espejo"}},
		{"Pedro Aguirre Cerda", []string{"pedro aguirre cerda"}},
		{"Colina", []string{"colina"}},
		{"Lampa", []string{"lampa"}},
		{"Buin", []string{"buin"}},
		{"Paine", []string{"paine"}},
		{"Talagante", []string{"talagante"}},
		{"Peñaflor", []string{"penaflor"}},
		{"Padre Hurtado", []string{"padre hurtado"}},
		{"Calera de Tango", []string{"calera de tango"}},
		{"Pirque", []string{"pirque"}},
		{"San José de Maipo", []string{"san jose de maipo"}},
		{"Melipilla", []string{"melipilla"}},
	}},
	{ZoneValparaiso, []place{
		{"Valparaíso", []string{"valparaiso", "valpo"}},
		{"Viña del Mar", []string{"vina del mar", "vina"}},
		{"Concón", []string{"concon", "con con"}},
		{"Quilpué", []string{"quilpue"}},
		{"Villa Alemana", []string{"villa alemana"}},
		{"Quillota", []string{"quillota"}},
		{"La Calera", []string{"la calera"}},
		{"Limache", []string{"limache"}},
		{"San Antonio", []string{"san antonio"}},
		{"Los Andes", []string{"los andes"}},
		{"San Felipe", []string{"san felipe"}},
		{"Casablanca", []string{"casablanca"}},
	}},
	{ZoneBiobio, []place{
		{"Concepción", []string{"concepcion", "conce"}},
		{"Talcahuano", []string{"talcahuano"}},
		{"San Pedro de la Paz", []string{"san pedro de la paz"}},
		{"Chiguayante", []string{"chiguayante"}},
		{"Hualpén", []string{"hualpen"}},
		{"Coronel", []string{"coronel"}},
		{"Lota", []string{"lota"}},
		{"Penco", []string{"penco"}},
		{"Tomé", []string{"tome"}},
		{"Los Ángeles", []string{"los angeles"}},
	}},
	{ZoneRegiones, []place{
		{"Arica", []string{"arica"}},
		{"Iquique", []string{"iquique"}},
		{"Antofagasta", []string{"antofagasta"}},
		{"Calama", []string{"calama"}},
		{"Copiapó", []string{"copiapo"}},
		{"La Serena", []string{"la serena"}},
		{"Coquimbo", []string{"coquimbo"}},
		{"Ovalle", []string{"ovalle"}},
		{"Rancagua", []string{"rancagua"}},
		{"Talca", []string{"talca"}},
		{"Curicó", []string{"curico"}},
		{"Linares", []string{"linares"}},
		{"Chillán", []string{"chillan"}},
		{"Temuco", []string{"temuco"}},
		{"Valdivia", []string{"valdivia"}},
		{"Osorno", []string{"osorno"}},
		{"Puerto Montt", []string{"puerto montt"}},
		{"Castro", []string{"castro"}},
		{"Coyhaique", []string{"coyhaique"}},
		{"Punta Arenas", []string{"punta arenas"}},
	}},
}

// Detect finds the first known locality named in text. Aliases match whole
// words only, so "Carlota" is not Lota.
func Detect(text string) (Locality, bool) {
	padded := " " + wordsOnly(textnorm.Normalize(text)) + " "
	if strings.TrimSpace(padded) == "" {
		return Locality{}, false
	}
	for _, g := range groups {
		for _, p := range g.places {
			for _, alias := range p.aliases {
				if strings.Contains(padded, " "+alias+" ") {
					return Locality{Name: p.name, Zone: g.zone}, true
				}
			}
		}
	}
	return Locality{}, false
}

func wordsOnly(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}
