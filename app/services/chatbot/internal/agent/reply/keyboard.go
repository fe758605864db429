package reply

import (
	"AeroBot/app/services/chatbot/internal/agent/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var keyboards = map[session.State][][]string{
	session.StateStart:       {{"Persona", "Mascota"}, {"Precio", "Envío"}, {"Hablar con asesor"}},
	session.StateQualify:     {{"Persona", "Mascota"}, {"Precio", "Envío"}, {"Hablar con asesor"}},
	session.StateHumanDetail: {{"Adulto", "Pediátrico"}, {"Ver precios", "Envío"}, {"Volver"}},
	session.StatePetDetail: {
		{"Gato/Perro Pequeño"}, {"Perro Mediano", "Perro Grande"}, {"Ver precios", "Envío"}, {"Volver"},
	},
	session.StateCollectData: {{"Enviar datos"}, {"Envío", "Garantía"}, {"Hablar con asesor"}},
	session.StateClose:       {{"Finalizar", "Agregar otra unidad"}, {"Instrucciones", "Envío"}, {"Garantía"}},
	session.StateDone:        {{"Instrucciones"}, {"Nuevo pedido"}},
}

// Keyboard builds the quick reply buttons offered in st.
func Keyboard(st session.State) tgbotapi.ReplyKeyboardMarkup {
	rows, ok := keyboards[st]
	if !ok {
		rows = keyboards[session.StateStart]
	}
	buttons := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, r := range rows {
		row := make([]tgbotapi.KeyboardButton, 0, len(r))
		for _, label := range r {
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		buttons = append(buttons, tgbotapi.NewKeyboardButtonRow(row...))
	}
	return tgbotapi.NewReplyKeyboard(buttons...)
}
