package reply

import (
	"fmt"
	"strings"

	"AeroBot/app/common/util"
	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/locality"
	"AeroBot/app/services/chatbot/internal/agent/session"
)

var greetingQuestions = []string{
	"¿Buscas aerocámara para PERSONA o para MASCOTA? Si es para persona, indícame ADULTO o PEDIÁTRICO. " +
		"Si es para mascota, indícame GATO/PERRO y tamaño (pequeño, mediano, grande).",
	"Cuéntame, ¿la aerocámara es para una PERSONA (adulto o pediátrico) o para tu MASCOTA (gato o perro, pequeño, mediano o grande)?",
	"Para recomendarte bien: ¿es para PERSONA (adulto/pediátrico) o para MASCOTA (gato/perro y tamaño)?",
}

var qualifyReprompts = []string{
	"No me quedó claro. ¿Es para PERSONA (adulto/pediátrico) o MASCOTA (gato/perro y tamaño)?",
	"¿Persona (adulto/pediátrico) o Mascota (gato/perro pequeño/mediano/grande)?",
}

var closeReprompts = []string{
	"¿Hay alguna duda técnica o de precio que quieras resolver antes de finalizar?",
	"¿Te ayudo con algo más antes de finalizar? Puedes escribir 'finalizar' o 'agregar otra unidad'.",
}

var doneReprompts = []string{
	"Tu pedido ya quedó registrado. ¿Necesitas instrucciones de uso o soporte? Para comprar otra vez escribe 'nuevo pedido'.",
	"¡Gracias por tu compra! Si quieres, te explico el uso paso a paso o iniciamos un 'nuevo pedido'.",
}

func (s *Styler) QualifyReprompt() string { return s.Pick(qualifyReprompts) }

func (s *Styler) CloseReprompt() string { return s.Pick(closeReprompts) }

func (s *Styler) DoneReprompt() string { return s.Pick(doneReprompts) }

const genericShipping = "Despachamos a todo Chile. En RM, 24–48 h hábiles; regiones, 48–96 h hábiles aprox. " +
	"Costo referencial desde $3.000 (según comuna/ciudad y peso). Retiro en bodega RM previa coordinación."

var zoneShipping = map[locality.Zone]string{
	locality.ZoneRM: "Para la Región Metropolitana el despacho toma 24–48 h hábiles, costo referencial desde $3.000. " +
		"También puedes retirar en bodega RM previa coordinación.",
	locality.ZoneValparaiso: "Para la Región de Valparaíso el despacho toma 48–72 h hábiles, costo referencial desde $4.500.",
	locality.ZoneBiobio:     "Para la Región del Biobío el despacho toma 48–72 h hábiles, costo referencial desde $4.500.",
	locality.ZoneRegiones:   "Para tu región el despacho toma 72–96 h hábiles aprox., costo referencial desde $5.500 según comuna y peso.",
}

// Shipping is zone specific when the zone is known.
func Shipping(zone string) string {
	if txt, ok := zoneShipping[locality.Zone(zone)]; ok {
		return txt
	}
	return genericShipping
}

func Warranty() string {
	return "Garantía legal 6 meses por fallas de fabricación. Cambios/devoluciones según Ley Pro-Consumidor en Chile. " +
		"Soporte técnico y educación de uso incluidos."
}

// Howto explains usage for the family; with no family it asks which one.
func Howto(f catalog.Family) string {
	switch f {
	case catalog.FamilyHuman:
		return "Para personas: agita el inhalador, acóplalo a la aerocámara, sella en boca, presiona 1 puff, " +
			"inhala lenta y profundamente 5–6 veces. En pediatría, sella en boca/nariz con mascarilla y cuenta respiraciones."
	case catalog.FamilyPet:
		return "Para mascotas: acopla el inhalador, sella suavemente la mascarilla en hocico, administra 1 puff, " +
			"permite 5–6 respiraciones tranquilas. Refuerza con caricias/premios para habituación positiva."
	default:
		return "¿Es para PERSONA o para MASCOTA? Te explico el uso paso a paso acorde a tu caso."
	}
}

func Cleaning() string {
	return "Limpieza: desarma la aerocámara y lava con agua tibia y detergente suave una vez por semana. " +
		"Deja secar al aire sin frotar el interior, así evitas la carga estática."
}

func Compatibility() string {
	return "Es compatible con inhaladores de dosis medida (MDI) de uso habitual, como salbutamol o budesonida. " +
		"No sirve para inhaladores de polvo seco."
}

func Payment() string {
	return "Puedes pagar con tarjeta de débito o crédito (hasta 3 cuotas sin interés) o por transferencia. " +
		"Al cerrar el pedido te envío un link de pago seguro."
}

func ChannelInfo() string {
	return "Estoy disponible en Sitio Web, WhatsApp, Instagram y Telegram. ¿Por cuál prefieres continuar?"
}

// Handoff varies with how far the buyer is in the order.
func Handoff(st session.State) string {
	switch st {
	case session.StateCollectData:
		return "Un asesor te contactará. Por favor deja TELÉFONO o EMAIL y comuna para priorizar el contacto."
	case session.StateClose, session.StateDone:
		return "Te conecto con un asesor. ¿Podrías confirmar tu TELÉFONO o EMAIL?"
	default:
		return "Listo, te derivo a un asesor humano. Déjame tu número o correo y te contactamos a la brevedad."
	}
}

// PriceHint answers a price question before the family is known.
func PriceHint() string {
	return "Con gusto: dime si es para PERSONA o MASCOTA y te muestro precios exactos."
}

func BuyHint(st session.State) string {
	switch st {
	case session.StateClose:
		return "Indícame el modelo o tamaño que deseas agregar, o escribe 'finalizar' para cerrar."
	case session.StateDone:
		return "Para una nueva compra escribe 'nuevo pedido' y partimos de cero."
	}
	return "Para ayudarte a comprar, primero definamos el modelo (Persona o Mascota)."
}

// Listing heads the family's price list with a question for the next choice.
func Listing(cat *catalog.Catalog, f catalog.Family) string {
	if f == catalog.FamilyPet {
		return "Excelente. Opciones para MASCOTAS:\n" + cat.Listing(f) + "\n\n" + DetailPrompt(f)
	}
	return "Perfecto. Opciones para PERSONAS:\n" + cat.Listing(catalog.FamilyHuman) + "\n\n" + DetailPrompt(catalog.FamilyHuman)
}

// DetailPrompt asks for the variant still missing in a detail state.
func DetailPrompt(f catalog.Family) string {
	if f == catalog.FamilyPet {
		return "¿Es GATO/Perro pequeño (S), Perro mediano (M) o Perro grande (L)?"
	}
	return "¿Prefieres ADULTO o PEDIÁTRICO?"
}

// Card describes one product.
func Card(p catalog.Product) string {
	txt := fmt.Sprintf("%s (SKU %s): %s.", p.Name, p.SKU, util.FormatCLP(p.PriceCLP))
	if p.Description != "" {
		txt += " " + p.Description
	}
	return txt
}

func Cards(ps []catalog.Product) string {
	cards := make([]string, 0, len(ps))
	for _, p := range ps {
		cards = append(cards, Card(p))
	}
	return strings.Join(cards, "\n")
}

// MissingFields asks for the contact data still needed.
func MissingFields(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return "Perfecto, me faltan: " + strings.Join(missing, ", ") + "."
}

func ContactRequest(f catalog.Family) string {
	if f == catalog.FamilyPet {
		return "Para emitir la orden necesito el NOMBRE del responsable, COMUNA/CIUDAD y TELÉFONO o EMAIL."
	}
	return "Para emitir la orden necesito tu NOMBRE, COMUNA/CIUDAD y TELÉFONO o EMAIL."
}

func Added(p catalog.Product) string {
	return fmt.Sprintf("Agregué %s al carrito (%s).", p.Name, util.FormatCLP(p.PriceCLP))
}

// Closing is sent once contact data is complete and the order exists.
func Closing(summary string, c session.Context, link string) string {
	return summary + "\n\n" +
		fmt.Sprintf("Datos de cliente: %s / %s / %s", c.Name, c.City, c.Contact()) + "\n\n" +
		Shipping(c.Zone) + "\n" + Warranty() + "\n\n" +
		"Para cerrar, te dejo link de pago seguro: " + link + "\n" +
		"Una vez confirmado, coordinamos despacho. ¿Deseas agregar otra unidad o escribir 'finalizar'?"
}

// Finalized closes the cycle; link is set only when a new order was issued.
func Finalized(link string) string {
	txt := "¡Listo! Te envié el resumen y el enlace de pago."
	if link != "" {
		txt += " Las unidades agregadas van en una orden aparte; el primer enlace sigue válido. Enlace por lo agregado: " + link
	}
	return txt + " ¿Necesitas instrucciones de uso o soporte?"
}

func EmptyCart() string {
	return "Tu carrito está vacío. " + qualifyReprompts[1]
}
