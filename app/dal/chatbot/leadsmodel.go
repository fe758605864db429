package chatbot

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ LeadsModel = (*customLeadsModel)(nil)

type (
	// LeadsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customLeadsModel.
	LeadsModel interface {
		leadsModel
		WithSession(session sqlx.Session) LeadsModel
		// ListRecent returns leads newest first; limit <= 0 means all rows.
		ListRecent(ctx context.Context, limit int64) ([]*Leads, error)
	}

	customLeadsModel struct {
		*defaultLeadsModel
	}
)

// NewLeadsModel returns a model for the database table.
func NewLeadsModel(conn sqlx.SqlConn) LeadsModel {
	return &customLeadsModel{
		defaultLeadsModel: newLeadsModel(conn),
	}
}

func (m *customLeadsModel) WithSession(session sqlx.Session) LeadsModel {
	return NewLeadsModel(sqlx.NewSqlConnFromSession(session))
}

func (m *customLeadsModel) ListRecent(ctx context.Context, limit int64) ([]*Leads, error) {
	var rows []*Leads
	var err error
	if limit > 0 {
		query := fmt.Sprintf("select %s from %s order by `created_at` desc, `id` desc limit ?", leadsRows, m.table)
		err = m.conn.QueryRowsCtx(ctx, &rows, query, limit)
	} else {
		query := fmt.Sprintf("select %s from %s order by `created_at` desc, `id` desc", leadsRows, m.table)
		err = m.conn.QueryRowsCtx(ctx, &rows, query)
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}
