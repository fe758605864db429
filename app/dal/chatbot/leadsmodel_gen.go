package chatbot

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var (
	leadsFieldNames = builder.RawFieldNames(&Leads{})
	leadsRows       = strings.Join(leadsFieldNames, ",")
)

type (
	leadsModel interface {
		Insert(ctx context.Context, data *Leads) (sql.Result, error)
		FindOne(ctx context.Context, id int64) (*Leads, error)
		Delete(ctx context.Context, id int64) error
	}

	defaultLeadsModel struct {
		conn  sqlx.SqlConn
		table string
	}

	Leads struct {
		Id        int64     `db:"id"`
		Channel   string    `db:"channel"`
		UserId    string    `db:"user_id"`
		Name      string    `db:"name"`
		Phone     string    `db:"phone"`
		Email     string    `db:"email"`
		City      string    `db:"city"`
		Notes     string    `db:"notes"`
		CreatedAt time.Time `db:"created_at"`
	}
)

func newLeadsModel(conn sqlx.SqlConn) *defaultLeadsModel {
	return &defaultLeadsModel{
		conn:  conn,
		table: "`leads`",
	}
}

func (m *defaultLeadsModel) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("delete from %s where `id` = ?", m.table)
	_, err := m.conn.ExecCtx(ctx, query, id)
	return err
}

func (m *defaultLeadsModel) FindOne(ctx context.Context, id int64) (*Leads, error) {
	query := fmt.Sprintf("select %s from %s where `id` = ? limit 1", leadsRows, m.table)
	var resp Leads
	err := m.conn.QueryRowCtx(ctx, &resp, query, id)
	switch err {
	case nil:
		return &resp, nil
	case sqlx.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultLeadsModel) Insert(ctx context.Context, data *Leads) (sql.Result, error) {
	query := fmt.Sprintf("insert into %s (%s) values (?, ?, ?, ?, ?, ?, ?, ?, ?)", m.table, leadsRows)
	return m.conn.ExecCtx(ctx, query, data.Id, data.Channel, data.UserId, data.Name, data.Phone, data.Email, data.City, data.Notes, data.CreatedAt)
}
