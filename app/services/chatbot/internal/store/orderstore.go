package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AeroBot/app/common/snowflake"
	"AeroBot/app/dal/chatbot"
	"AeroBot/app/services/chatbot/internal/agent/cart"
	"AeroBot/app/services/chatbot/internal/agent/session"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type Lead struct {
	Channel string
	UserID  string
	Name    string
	Phone   string
	Email   string
	City    string
	Notes   string
}

type OrderStore struct {
	conn   sqlx.SqlConn
	leads  chatbot.LeadsModel
	orders chatbot.OrdersModel
	now    func() time.Time
}

func NewOrderStore(conn sqlx.SqlConn) *OrderStore {
	return &OrderStore{
		conn:   conn,
		leads:  chatbot.NewLeadsModel(conn),
		orders: chatbot.NewOrdersModel(conn),
		now:    time.Now,
	}
}

// PersistOrder snapshots the cart into an immutable pending order; the total
// is computed here and never recomputed.
func (s *OrderStore) PersistOrder(ctx context.Context, channel, userID string, lines []session.Line) (int64, int64, error) {
	return persistOrder(ctx, s.orders, s.now(), channel, userID, lines)
}

func (s *OrderStore) PersistLead(ctx context.Context, lead Lead) (int64, error) {
	return persistLead(ctx, s.leads, s.now(), lead)
}

// Checkout writes the lead and the order in one transaction.
func (s *OrderStore) Checkout(ctx context.Context, lead Lead, lines []session.Line) (orderID, total int64, err error) {
	err = s.conn.TransactCtx(ctx, func(ctx context.Context, tx sqlx.Session) error {
		now := s.now()
		if _, err := persistLead(ctx, s.leads.WithSession(tx), now, lead); err != nil {
			return err
		}
		orderID, total, err = persistOrder(ctx, s.orders.WithSession(tx), now, lead.Channel, lead.UserID, lines)
		return err
	})
	if err != nil {
		return 0, 0, err
	}
	return orderID, total, nil
}

func (s *OrderStore) FindOrder(ctx context.Context, id int64) (*chatbot.Orders, error) {
	return s.orders.FindOne(ctx, id)
}

func (s *OrderStore) ListLeads(ctx context.Context, limit int64) ([]*chatbot.Leads, error) {
	return s.leads.ListRecent(ctx, limit)
}

// Items decodes an order's line snapshot.
func Items(o *chatbot.Orders) ([]session.Line, error) {
	var lines []session.Line
	if o.Items == "" {
		return lines, nil
	}
	if err := json.Unmarshal([]byte(o.Items), &lines); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return lines, nil
}

func persistOrder(ctx context.Context, orders chatbot.OrdersModel, now time.Time, channel, userID string, lines []session.Line) (int64, int64, error) {
	if lines == nil {
		lines = []session.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return 0, 0, fmt.Errorf("encode order items: %w", err)
	}
	o := &chatbot.Orders{
		Id:        snowflake.Next(),
		Channel:   channel,
		UserId:    userID,
		Items:     string(raw),
		TotalClp:  cart.Total(lines),
		Status:    chatbot.OrderStatusPending,
		CreatedAt: now,
	}
	if _, err := orders.Insert(ctx, o); err != nil {
		return 0, 0, fmt.Errorf("insert order: %w", err)
	}
	return o.Id, o.TotalClp, nil
}

func persistLead(ctx context.Context, leads chatbot.LeadsModel, now time.Time, lead Lead) (int64, error) {
	row := &chatbot.Leads{
		Id:        snowflake.Next(),
		Channel:   lead.Channel,
		UserId:    lead.UserID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Email:     lead.Email,
		City:      lead.City,
		Notes:     lead.Notes,
		CreatedAt: now,
	}
	if _, err := leads.Insert(ctx, row); err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return row.Id, nil
}
