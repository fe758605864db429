package telegram

import (
	"encoding/json"
	"net/http"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

type Incoming struct {
	ChatID   string
	Text     string
	UpdateID int
}

// FromUpdate extracts the text of a new or edited message.
func FromUpdate(u tgbotapi.Update) (Incoming, bool) {
	msg := u.Message
	if msg == nil {
		msg = u.EditedMessage
	}
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return Incoming{}, false
	}
	return Incoming{
		ChatID:   strconv.FormatInt(msg.Chat.ID, 10),
		Text:     msg.Text,
		UpdateID: u.UpdateID,
	}, true
}

// ParseUpdate decodes a webhook delivery.
func ParseUpdate(r *http.Request) (tgbotapi.Update, error) {
	var u tgbotapi.Update
	err := json.NewDecoder(r.Body).Decode(&u)
	return u, err
}

// SecretMatches accepts any request when no secret is configured.
func SecretMatches(r *http.Request, expected string) bool {
	return expected == "" || r.Header.Get(SecretHeader) == expected
}
