package chatbot

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

const OrderStatusPending = "pending"

var _ OrdersModel = (*customOrdersModel)(nil)

type (
	// OrdersModel is an interface to be customized, add more methods here,
	// and implement the added methods in customOrdersModel.
	OrdersModel interface {
		ordersModel
		WithSession(session sqlx.Session) OrdersModel
		// ListByUser returns orders of one conversation, newest first
		ListByUser(ctx context.Context, channel, userId string) ([]*Orders, error)
	}

	customOrdersModel struct {
		*defaultOrdersModel
	}
)

// NewOrdersModel returns a model for the database table.
func NewOrdersModel(conn sqlx.SqlConn) OrdersModel {
	return &customOrdersModel{
		defaultOrdersModel: newOrdersModel(conn),
	}
}

func (m *customOrdersModel) WithSession(session sqlx.Session) OrdersModel {
	return NewOrdersModel(sqlx.NewSqlConnFromSession(session))
}

func (m *customOrdersModel) ListByUser(ctx context.Context, channel, userId string) ([]*Orders, error) {
	var rows []*Orders
	query := fmt.Sprintf("select %s from %s where `channel` = ? and `user_id` = ? order by `created_at` desc, `id` desc", ordersRows, m.table)
	if err := m.conn.QueryRowsCtx(ctx, &rows, query, channel, userId); err != nil {
		return nil, err
	}
	return rows, nil
}
