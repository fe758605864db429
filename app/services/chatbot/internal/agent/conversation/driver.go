package conversation

import (
	"context"
	"fmt"
	"time"

	"AeroBot/app/common/events"
	"AeroBot/app/dal/chatbot"
	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/generator"
	"AeroBot/app/services/chatbot/internal/agent/intent"
	"AeroBot/app/services/chatbot/internal/agent/reply"
	"AeroBot/app/services/chatbot/internal/agent/session"
	"AeroBot/app/services/chatbot/internal/agent/textnorm"
	"AeroBot/app/services/chatbot/internal/store"

	"github.com/zeromicro/go-zero/core/logx"
)

type (
	SessionStore interface {
		GetOrCreate(ctx context.Context, channel, userID string) (*chatbot.Sessions, error)
		Merge(ctx context.Context, sess *chatbot.Sessions, u store.Update) error
	}

	OrderStore interface {
		Checkout(ctx context.Context, lead store.Lead, lines []session.Line) (orderID, total int64, err error)
		PersistOrder(ctx context.Context, channel, userID string, lines []session.Line) (orderID, total int64, err error)
	}

	Generator interface {
		Enabled() bool
		Reply(ctx context.Context, in generator.Input) string
	}

	Publisher interface {
		Publish(ctx context.Context, evs ...events.Event) error
	}
)

type Deps struct {
	Sessions  SessionStore
	Orders    OrderStore
	Catalog   *catalog.Catalog
	Styler    *reply.Styler
	Generator Generator
	Publisher Publisher
	// PaymentURL prefixes the payment links handed to buyers.
	PaymentURL string
}

type Reply struct {
	Text  string
	State session.State
}

// Driver runs one conversation turn at a time per call; it keeps no state of
// its own between calls.
type Driver struct {
	sessions   SessionStore
	orders     OrderStore
	catalog    *catalog.Catalog
	classifier *intent.Classifier
	styler     *reply.Styler
	generator  Generator
	publisher  Publisher
	paymentURL string
	now        func() time.Time
}

func NewDriver(d Deps) *Driver {
	cat := d.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	skus := make([]string, 0)
	for _, p := range cat.All() {
		skus = append(skus, p.SKU)
	}
	styler := d.Styler
	if styler == nil {
		styler = reply.NewStyler(nil)
	}
	return &Driver{
		sessions:   d.Sessions,
		orders:     d.Orders,
		catalog:    cat,
		classifier: intent.NewClassifier(skus),
		styler:     styler,
		generator:  d.Generator,
		publisher:  d.Publisher,
		paymentURL: d.PaymentURL,
		now:        time.Now,
	}
}

// turn is the working set of one HandleTurn call.
type turn struct {
	channel string
	userID  string
	text    string
	norm    string
	intent  intent.Intent
	state   session.State
	next    session.State
	c       session.Context
	dirty   bool
	events  []events.Event
}

func (t *turn) moveTo(st session.State) {
	t.next = st
}

func (t *turn) emit(e events.Event) {
	e.Channel = t.channel
	e.UserID = t.userID
	t.events = append(t.events, e)
}

// HandleTurn loads the session of (channel, userID), applies text to it and
// persists the outcome. Catalog and storage failures fail the turn; nothing is
// written in that case.
func (d *Driver) HandleTurn(ctx context.Context, channel, userID, text string) (Reply, error) {
	sess, err := d.sessions.GetOrCreate(ctx, channel, userID)
	if err != nil {
		return Reply{}, err
	}
	st := store.State(sess)
	t := &turn{
		channel: channel,
		userID:  userID,
		text:    text,
		norm:    textnorm.Normalize(text),
		intent:  d.classifier.Classify(text),
		state:   st,
		next:    st,
		c:       session.FromMap(store.Values(sess)),
	}

	var out string
	if t.intent == intent.ProductInfo && st != session.StateStart {
		out = d.productInfo(t)
	} else {
		switch st {
		case session.StateQualify:
			out = d.onQualify(ctx, t)
		case session.StateHumanDetail, session.StatePetDetail:
			out, err = d.onDetail(ctx, t)
		case session.StateCollectData:
			out, err = d.onCollectData(ctx, t)
		case session.StateClose:
			out, err = d.onClose(ctx, t)
		case session.StateDone:
			out = d.onDone(ctx, t)
		default:
			out = d.onStart(t)
		}
	}
	if err != nil {
		logx.WithContext(ctx).Errorw("conversation turn failed",
			logx.Field("channel", channel),
			logx.Field("user_id", userID),
			logx.Field("state", st),
			logx.Field("intent", t.intent),
			logx.Field("err", err.Error()))
		return Reply{}, err
	}

	if t.dirty || t.next != t.state {
		u := store.Update{State: t.next}
		if t.dirty {
			u.Context = t.c.ToMap()
		}
		if err := d.sessions.Merge(ctx, sess, u); err != nil {
			return Reply{}, fmt.Errorf("persist turn: %w", err)
		}
	}
	d.publish(ctx, t.events)
	return Reply{Text: out, State: t.next}, nil
}

func (d *Driver) publish(ctx context.Context, evs []events.Event) {
	if d.publisher == nil || len(evs) == 0 {
		return
	}
	now := d.now()
	for i := range evs {
		evs[i].At = now
	}
	if err := d.publisher.Publish(ctx, evs...); err != nil {
		logx.WithContext(ctx).Errorw("publish conversation events failed", logx.Field("err", err.Error()))
	}
}

// fallback delegates an unrecognized message to the generator when one is
// configured, else returns the canned re-prompt.
func (d *Driver) fallback(ctx context.Context, t *turn, reprompt string) string {
	if d.generator == nil || !d.generator.Enabled() {
		return d.styler.Wrap(reprompt)
	}
	return d.generator.Reply(ctx, generator.Input{
		Message: t.text,
		State:   t.state,
		Context: t.c.ToMap(),
	})
}
