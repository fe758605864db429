package intent

import (
	"AeroBot/app/services/chatbot/internal/agent/textnorm"
)

// Matcher tests normalized text.
type Matcher func(text string) bool

type Rule struct {
	Intent Intent
	Match  Matcher
}

func anyOf(keywords ...string) Matcher {
	kw := textnorm.NormalizeAll(keywords)
	return func(text string) bool {
		return textnorm.ContainsAny(text, kw)
	}
}

func allOf(ms ...Matcher) Matcher {
	return func(text string) bool {
		for _, m := range ms {
			if !m(text) {
				return false
			}
		}
		return true
	}
}

func either(ms ...Matcher) Matcher {
	return func(text string) bool {
		for _, m := range ms {
			if m(text) {
				return true
			}
		}
		return false
	}
}

// Classifier maps text to the intent of the first matching rule. The order of
// the rules is part of its behavior: product rules sit before family rules and
// shipping before price so that overlapping keywords resolve the same way
// every time.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds the rule list; skus lets product lookups by code
// short-circuit ("info AERO-M-PM").
func NewClassifier(skus []string) *Classifier {
	mentionsSKU := anyOf(skus...)

	infoMarker := anyOf("info", "detalle", "cuentame", "cuéntame", "que es", "qué es", "caracteristica", "característica", "descripcion", "descripción", "ficha", "especificacion")
	productMention := anyOf("aerocamara", "aerocámara", "adulto", "pediatric", "pediátric", "gato", "perro", "talla")

	return &Classifier{rules: []Rule{
		{Finalize, anyOf("finalizar", "finaliza", "terminar compra", "cerrar pedido", "cerrar compra", "eso es todo")},
		{Handoff, anyOf("asesor", "hablar con un humano", "hablar con una persona", "ejecutivo", "vendedor real")},
		{NewOrder, anyOf("nuevo pedido", "otro pedido", "nueva compra", "empezar de nuevo")},
		{GoBack, anyOf("volver", "atras", "atrás", "regresar")},
		{Greet, anyOf("hola", "buenas", "buenos dias", "buenos días", "/start", "saludos")},
		{AddUnit, anyOf("otra unidad", "agregar", "añadir", "sumar otra", "una mas", "una más")},
		{SendData, anyOf("enviar datos")},
		{ProductInfo, either(mentionsSKU, allOf(infoMarker, productMention))},
		{ProductPediatric, anyOf("pediatric", "pediátric", "niño", "niña", "hijo", "hija", "bebe", "bebé", "guagua", "infantil")},
		{ProductPetSmall, anyOf("gato", "perro pequeño", "perro chico", "pequeño", "talla s")},
		{ProductPetMedium, anyOf("mediano", "mediana", "talla m")},
		{ProductPetLarge, anyOf("grande", "talla l")},
		{ProductAdult, anyOf("adulto", "adulta")},
		{WantPet, anyOf("mascota", "perro", "perrito", "gatito", "veterinari", "animal")},
		{WantHuman, anyOf("persona", "humana", "humano", "para mi", "para mí")},
		{Shipping, anyOf("envío", "despacho", "retiro", "delivery", "cuánto demora", "cuánto tarda", "llega")},
		{FaqPayment, anyOf("medio de pago", "medios de pago", "tarjeta", "transferencia", "webpay", "cuotas", "débito", "crédito", "forma de pago")},
		{AskPrice, anyOf("precio", "cuánto", "cuanto vale", "cuesta", "costo", "valor")},
		{Buy, anyOf("comprar", "compro", "quiero", "orden", "pagar")},
		{Warranty, anyOf("garantía", "devolución", "devolver", "cambio", "falla")},
		{FaqCleaning, anyOf("limpi", "lavar", "lavado", "desinfect")},
		{Howto, anyOf("cómo se usa", "cómo usar", "cómo la uso", "instrucciones", "modo de uso", "ayuda", "paso a paso")},
		{FaqCompatibility, anyOf("compatib", "inhalador", "puff", "salbutamol", "sirve con", "funciona con")},
		{Sizing, anyOf("tamaño", "talla", "medida", "size", "modelo", "cuál me sirve")},
		{ChannelInfo, anyOf("instagram", "whatsapp", "telegram", "página web", "sitio web", "redes sociales", "otros canales")},
	}}
}

// Rules returns the rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

func (c *Classifier) Classify(text string) Intent {
	t := textnorm.Normalize(text)
	if t == "" {
		return Unknown
	}
	for _, r := range c.rules {
		if r.Match(t) {
			return r.Intent
		}
	}
	return Unknown
}
