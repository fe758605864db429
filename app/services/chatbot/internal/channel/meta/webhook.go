package meta

import (
	"encoding/json"
	"strings"

	"AeroBot/app/common/consts/biz"
)

// Incoming is one text message received through a Meta webhook.
type Incoming struct {
	Channel   string
	From      string
	Text      string
	MessageID string
}

type messagingEvent struct {
	Sender struct {
		ID string `json:"id"`
	} `json:"sender"`
	Message struct {
		Mid    string `json:"mid"`
		Text   string `json:"text"`
		IsEcho bool   `json:"is_echo"`
	} `json:"message"`
}

type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				MessagingProduct string `json:"messaging_product"`
				Messages         []struct {
					ID   string `json:"id"`
					From string `json:"from"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
				Messaging []messagingEvent `json:"messaging"`
			} `json:"value"`
		} `json:"changes"`
		Messaging []messagingEvent `json:"messaging"`
	} `json:"entry"`
}

// ParseWebhook extracts text messages from a WhatsApp or Instagram webhook
// body. Status updates, echoes and non text messages are skipped.
func ParseWebhook(body []byte) ([]Incoming, error) {
	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}
	var out []Incoming
	addInstagram := func(evs []messagingEvent) {
		for _, m := range evs {
			if m.Sender.ID == "" || m.Message.IsEcho || strings.TrimSpace(m.Message.Text) == "" {
				continue
			}
			out = append(out, Incoming{Channel: biz.ChannelInstagram, From: m.Sender.ID, Text: m.Message.Text, MessageID: m.Message.Mid})
		}
	}
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			if change.Value.MessagingProduct == biz.ChannelWhatsApp {
				for _, m := range change.Value.Messages {
					if m.From == "" || strings.TrimSpace(m.Text.Body) == "" {
						continue
					}
					out = append(out, Incoming{Channel: biz.ChannelWhatsApp, From: m.From, Text: m.Text.Body, MessageID: m.ID})
				}
				continue
			}
			addInstagram(change.Value.Messaging)
		}
		addInstagram(entry.Messaging)
	}
	return out, nil
}

// Verify answers the subscription handshake: the challenge is echoed only
// for a subscribe request carrying the expected token.
func Verify(mode, token, challenge, expected string) (string, bool) {
	if mode != "subscribe" || expected == "" || token != expected {
		return "", false
	}
	return challenge, true
}
