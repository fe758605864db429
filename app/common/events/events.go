package events

import (
	"fmt"
	"strings"
	"time"

	"AeroBot/app/common/util"
)

const (
	TypeLeadCaptured     = "lead_captured"
	TypeOrderPlaced      = "order_placed"
	TypeHandoffRequested = "handoff_requested"
)

// Event is the message body published on the chatbot topic.
type Event struct {
	Type    string    `json:"type"`
	Channel string    `json:"channel"`
	UserID  string    `json:"user_id"`
	OrderID int64     `json:"order_id,omitempty"`
	Total   int64     `json:"total,omitempty"`
	Name    string    `json:"name,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Email   string    `json:"email,omitempty"`
	City    string    `json:"city,omitempty"`
	Text    string    `json:"text,omitempty"`
	At      time.Time `json:"at"`
}

// Key partitions events of one conversation together.
func (e Event) Key() []byte {
	return []byte(e.Channel + ":" + e.UserID)
}

// Summary renders the event for the merchant's notification chat.
func (e Event) Summary() string {
	var sb strings.Builder
	switch e.Type {
	case TypeLeadCaptured:
		sb.WriteString("Nuevo lead")
	case TypeOrderPlaced:
		sb.WriteString(fmt.Sprintf("Nuevo pedido #%d por %s", e.OrderID, util.FormatCLP(e.Total)))
	case TypeHandoffRequested:
		sb.WriteString("Cliente solicita asesor")
	default:
		sb.WriteString(e.Type)
	}
	sb.WriteString(fmt.Sprintf(" (%s %s)", e.Channel, e.UserID))
	for _, kv := range [][2]string{{"Nombre", e.Name}, {"Ciudad", e.City}, {"Teléfono", e.Phone}, {"Email", e.Email}, {"Mensaje", e.Text}} {
		if kv[1] == "" {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(kv[0])
		sb.WriteString(": ")
		sb.WriteString(kv[1])
	}
	return sb.String()
}
