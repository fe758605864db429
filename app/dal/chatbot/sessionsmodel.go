package chatbot

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ SessionsModel = (*customSessionsModel)(nil)

type (
	// SessionsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customSessionsModel.
	SessionsModel interface {
		sessionsModel
		WithSession(session sqlx.Session) SessionsModel
		CountByChannelUserId(ctx context.Context, channel, userId string) (int64, error)
	}

	customSessionsModel struct {
		*defaultSessionsModel
	}
)

// NewSessionsModel returns a model for the database table.
func NewSessionsModel(conn sqlx.SqlConn) SessionsModel {
	return &customSessionsModel{
		defaultSessionsModel: newSessionsModel(conn),
	}
}

func (m *customSessionsModel) WithSession(session sqlx.Session) SessionsModel {
	return NewSessionsModel(sqlx.NewSqlConnFromSession(session))
}

func (m *customSessionsModel) CountByChannelUserId(ctx context.Context, channel, userId string) (int64, error) {
	var total int64
	q := fmt.Sprintf("select count(1) from %s where `channel` = ? and `user_id` = ?", m.table)
	if err := m.conn.QueryRowCtx(ctx, &total, q, channel, userId); err != nil {
		return 0, err
	}
	return total, nil
}
