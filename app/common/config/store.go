package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverMysql  = "mysql"
	DriverSqlite = "sqlite"
)

// StoreConf selects the relational backend. Sqlite is the default so the bot
// can run standalone; production deployments point it at MySQL.
type StoreConf struct {
	Driver     string `json:",default=sqlite,options=mysql|sqlite"`
	DataSource string `json:",optional"`
	// Migrate applies the embedded DDL at startup.
	Migrate bool `json:",default=true"`
}

func (c StoreConf) MustNewConn() sqlx.SqlConn {
	conn, err := c.NewConn()
	if err != nil {
		panic(err)
	}
	return conn
}

func (c StoreConf) NewConn() (sqlx.SqlConn, error) {
	switch strings.ToLower(c.Driver) {
	case DriverMysql:
		return sqlx.NewMysql(c.DataSource), nil
	case DriverSqlite, "":
		dsn := c.DataSource
		if dsn == "" {
			dsn = SqliteDSN("chatbot.db")
		}
		return sqlx.NewSqlConn(DriverSqlite, dsn), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", c.Driver)
	}
}

// SqliteDSN waits on locked databases and takes the write lock when a
// transaction begins, so read-merge-write transactions serialize.
func SqliteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(10000)&_pragma=foreign_keys(1)&_txlock=immediate"
}

// ApplySchema runs each statement in order; every statement must be idempotent.
func ApplySchema(ctx context.Context, conn sqlx.SqlConn, statements []string) error {
	for _, stmt := range statements {
		if _, err := conn.ExecCtx(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
