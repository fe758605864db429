package cart

import (
	"fmt"
	"strings"

	"AeroBot/app/common/util"
	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/session"
)

// AddLine appends one line for sku; repeated products become repeated lines.
// An unknown sku returns catalog.ErrProductNotFound and leaves c untouched.
func AddLine(c session.Context, cat *catalog.Catalog, sku string, qty int) (session.Context, catalog.Product, error) {
	p, err := cat.Lookup(sku)
	if err != nil {
		return c, catalog.Product{}, err
	}
	if qty <= 0 {
		qty = 1
	}
	lines := make([]session.Line, 0, len(c.Cart)+1)
	lines = append(lines, c.Cart...)
	c.Cart = append(lines, session.Line{
		SKU:       p.SKU,
		Name:      p.Name,
		UnitPrice: p.PriceCLP,
		Qty:       qty,
	})
	return c, p, nil
}

func Total(lines []session.Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

func Summary(lines []session.Line) string {
	if len(lines) == 0 {
		return "Tu carrito está vacío."
	}
	var sb strings.Builder
	sb.WriteString("Resumen de tu pedido:")
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("\n• %s x%d: %s", l.Name, l.Qty, util.FormatCLP(l.Subtotal())))
	}
	sb.WriteString("\nTotal (CLP): ")
	sb.WriteString(util.FormatCLP(Total(lines)))
	return sb.String()
}

// PaymentLink formats the checkout URL handed to the buyer. Payment itself
// happens outside the bot.
func PaymentLink(baseURL string, orderID, total int64) string {
	return fmt.Sprintf("%s/pagar?order_id=%d&monto=%d", strings.TrimRight(baseURL, "/"), orderID, total)
}
