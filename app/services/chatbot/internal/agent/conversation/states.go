package conversation

import (
	"context"
	"fmt"
	"strings"

	"AeroBot/app/common/events"
	"AeroBot/app/services/chatbot/internal/agent/cart"
	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/intent"
	"AeroBot/app/services/chatbot/internal/agent/reply"
	"AeroBot/app/services/chatbot/internal/agent/session"
	"AeroBot/app/services/chatbot/internal/store"
)

func (d *Driver) onStart(t *turn) string {
	t.c.Cart = []session.Line{}
	t.dirty = true
	t.moveTo(session.StateQualify)
	return d.styler.Greeting()
}

func (d *Driver) onQualify(ctx context.Context, t *turn) string {
	switch t.intent {
	case intent.WantHuman, intent.WantPet, intent.Sizing,
		intent.ProductAdult, intent.ProductPediatric,
		intent.ProductPetSmall, intent.ProductPetMedium, intent.ProductPetLarge:
		f := familyOf(t)
		if f == "" {
			return d.styler.Wrap("¿Persona (adulto/pediátrico) o Mascota (gato/perro pequeño/mediano/grande)?")
		}
		t.c.Family = f
		t.dirty = true
		t.moveTo(detailState(f))
		return d.styler.Wrap(reply.Listing(d.catalog, f))
	case intent.Greet:
		return d.styler.Greeting()
	case intent.Unknown:
		return d.fallback(ctx, t, d.styler.QualifyReprompt())
	}
	if txt, ok := d.answer(t); ok {
		return d.styler.Wrap(txt)
	}
	return d.styler.Wrap(d.styler.QualifyReprompt())
}

func (d *Driver) onDetail(ctx context.Context, t *turn) (string, error) {
	family := catalog.FamilyHuman
	if t.state == session.StatePetDetail {
		family = catalog.FamilyPet
	}
	switch t.intent {
	case intent.GoBack:
		t.moveTo(session.StateQualify)
		return d.styler.Wrap(d.styler.QualifyReprompt()), nil
	case intent.AskPrice:
		return d.styler.Wrap(reply.Listing(d.catalog, family)), nil
	case intent.Buy:
		return d.styler.Wrap(reply.DetailPrompt(family)), nil
	}
	if t.intent.IsInformational() || t.intent == intent.Handoff {
		txt, _ := d.answer(t)
		return d.styler.Wrap(txt), nil
	}

	p, ok, err := d.pickProduct(t, family)
	if err != nil {
		return "", err
	}
	if !ok {
		return d.styler.Wrap(reply.DetailPrompt(family)), nil
	}
	if err := d.addLine(t, p); err != nil {
		return "", err
	}
	t.moveTo(session.StateCollectData)
	added := reply.Added(p) + "\n" + cart.Summary(t.c.Cart)
	if len(t.c.Missing()) == 0 {
		// contact data survived a go back; nothing left to ask
		return d.checkout(ctx, t, added)
	}
	return d.styler.Wrap(added + "\n\n" + reply.ContactRequest(p.Family)), nil
}

func (d *Driver) onCollectData(ctx context.Context, t *turn) (string, error) {
	if t.intent == intent.GoBack {
		t.c.Cart = []session.Line{}
		t.dirty = true
		t.moveTo(session.StateQualify)
		return d.styler.Wrap(d.styler.QualifyReprompt()), nil
	}

	pendingName := t.c.Name == "" && !steering(t.intent) && looksLikeName(t.text)
	if looksLikeContact(t.text) || sniffable(t.intent) || pendingName {
		d.fillContact(t)
	} else {
		var txt string
		switch {
		case t.intent == intent.SendData, t.intent == intent.Buy:
			txt = reply.ContactRequest(t.c.Family)
		default:
			txt, _ = d.answer(t)
		}
		if missing := t.c.Missing(); len(missing) > 0 {
			txt = strings.TrimSpace(txt + "\n\n" + reply.MissingFields(missing))
		}
		return d.styler.Wrap(txt), nil
	}

	if missing := t.c.Missing(); len(missing) > 0 {
		return d.styler.Wrap(reply.MissingFields(missing)), nil
	}
	return d.checkout(ctx, t, "")
}

// checkout persists the lead and the cart as one order and moves to CLOSE.
func (d *Driver) checkout(ctx context.Context, t *turn, prefix string) (string, error) {
	if len(t.c.Cart) == 0 {
		t.moveTo(session.StateQualify)
		return d.styler.Wrap(reply.EmptyCart()), nil
	}
	lead := store.Lead{
		Channel: t.channel,
		UserID:  t.userID,
		Name:    t.c.Name,
		Phone:   t.c.Phone,
		Email:   t.c.Email,
		City:    t.c.City,
	}
	orderID, total, err := d.orders.Checkout(ctx, lead, t.c.Cart)
	if err != nil {
		return "", fmt.Errorf("checkout: %w", err)
	}
	t.c.OrderID = orderID
	t.c.OrderedLines = len(t.c.Cart)
	t.dirty = true
	t.moveTo(session.StateClose)
	t.emit(events.Event{Type: events.TypeLeadCaptured, Name: lead.Name, Phone: lead.Phone, Email: lead.Email, City: lead.City})
	t.emit(events.Event{Type: events.TypeOrderPlaced, OrderID: orderID, Total: total, Name: lead.Name, City: lead.City})

	link := cart.PaymentLink(d.paymentURL, orderID, total)
	txt := reply.Closing(cart.Summary(t.c.Cart), t.c, link)
	if prefix != "" {
		txt = prefix + "\n\n" + txt
	}
	return d.styler.Wrap(txt), nil
}

func (d *Driver) onClose(ctx context.Context, t *turn) (string, error) {
	switch t.intent {
	case intent.Finalize:
		return d.finalize(ctx, t)
	case intent.Buy:
		return d.styler.Wrap(reply.BuyHint(session.StateClose)), nil
	}
	if t.intent == intent.AddUnit || t.intent.IsProduct() {
		return d.addUnit(t)
	}
	if txt, ok := d.answer(t); ok {
		return d.styler.Wrap(txt), nil
	}
	return d.fallback(ctx, t, d.styler.CloseReprompt()), nil
}

func (d *Driver) addUnit(t *turn) (string, error) {
	p, ok, err := d.pickProduct(t, t.c.Family)
	if err != nil {
		return "", err
	}
	if !ok {
		if len(t.c.Cart) == 0 {
			return d.styler.Wrap(reply.DetailPrompt(t.c.Family)), nil
		}
		p, err = d.catalog.Lookup(t.c.Cart[len(t.c.Cart)-1].SKU)
		if err != nil {
			return "", err
		}
	}
	if err := d.addLine(t, p); err != nil {
		return "", err
	}
	return d.styler.Wrap(reply.Added(p) + "\n" + cart.Summary(t.c.Cart) +
		"\n\nEscribe 'finalizar' para emitir la orden con todas las unidades."), nil
}

// finalize closes the cycle. Lines added after the last persisted order go
// into a supplementary order of their own, so no line is billed twice.
func (d *Driver) finalize(ctx context.Context, t *turn) (string, error) {
	t.moveTo(session.StateDone)
	if len(t.c.Cart) <= t.c.OrderedLines {
		return d.styler.Wrap(reply.Finalized("")), nil
	}
	added := t.c.Cart[t.c.OrderedLines:]
	orderID, total, err := d.orders.PersistOrder(ctx, t.channel, t.userID, added)
	if err != nil {
		return "", fmt.Errorf("persist order: %w", err)
	}
	t.c.OrderID = orderID
	t.c.OrderedLines = len(t.c.Cart)
	t.dirty = true
	t.emit(events.Event{Type: events.TypeOrderPlaced, OrderID: orderID, Total: total, Name: t.c.Name, City: t.c.City})
	return d.styler.Wrap(reply.Finalized(cart.PaymentLink(d.paymentURL, orderID, total))), nil
}

func (d *Driver) onDone(ctx context.Context, t *turn) string {
	if t.intent == intent.NewOrder {
		t.c = t.c.Reset()
		t.dirty = true
		t.moveTo(session.StateQualify)
		return d.styler.Greeting()
	}
	if txt, ok := d.answer(t); ok {
		return d.styler.Wrap(txt)
	}
	return d.fallback(ctx, t, d.styler.DoneReprompt())
}

// productInfo answers with product cards and never moves the conversation.
func (d *Driver) productInfo(t *turn) string {
	if p, ok := d.catalog.FindSKU(t.text); ok {
		return d.styler.Wrap(reply.Card(p))
	}
	if p, ok, err := d.pickProduct(t, t.c.Family); err == nil && ok {
		return d.styler.Wrap(reply.Card(p))
	}
	if t.c.Family != "" {
		return d.styler.Wrap(reply.Cards(d.catalog.Family(t.c.Family)))
	}
	return d.styler.Wrap(reply.Cards(d.catalog.All()))
}

func (d *Driver) addLine(t *turn, p catalog.Product) error {
	c, _, err := cart.AddLine(t.c, d.catalog, p.SKU, 1)
	if err != nil {
		return err
	}
	c.Family = p.Family
	t.c = c
	t.dirty = true
	return nil
}

// answer resolves the intents every state can answer without moving. ok is
// false for intents that need a state specific rule.
func (d *Driver) answer(t *turn) (string, bool) {
	switch t.intent {
	case intent.Handoff:
		t.emit(events.Event{Type: events.TypeHandoffRequested, Name: t.c.Name, Phone: t.c.Phone, Email: t.c.Email, City: t.c.City, Text: t.text})
		return reply.Handoff(t.state), true
	case intent.Shipping:
		return reply.Shipping(t.c.Zone), true
	case intent.Warranty:
		return reply.Warranty(), true
	case intent.Howto:
		return reply.Howto(t.c.Family), true
	case intent.FaqCleaning:
		return reply.Cleaning(), true
	case intent.FaqCompatibility:
		return reply.Compatibility(), true
	case intent.FaqPayment:
		return reply.Payment(), true
	case intent.ChannelInfo:
		return reply.ChannelInfo(), true
	case intent.AskPrice:
		if t.c.Family != "" {
			return reply.Listing(d.catalog, t.c.Family), true
		}
		return reply.PriceHint(), true
	case intent.Buy:
		return reply.BuyHint(t.state), true
	}
	return "", false
}

func detailState(f catalog.Family) session.State {
	if f == catalog.FamilyPet {
		return session.StatePetDetail
	}
	return session.StateHumanDetail
}
