package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"AeroBot/app/common/snowflake"
	"AeroBot/app/dal/chatbot"
	"AeroBot/app/services/chatbot/internal/agent/session"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// Update carries the optional parts of a session write: an empty State keeps
// the stored one and a nil Context keeps the stored blob.
type Update struct {
	State   session.State
	Context map[string]any
}

type SessionStore struct {
	conn     sqlx.SqlConn
	sessions chatbot.SessionsModel
	now      func() time.Time
}

func NewSessionStore(conn sqlx.SqlConn) *SessionStore {
	return &SessionStore{
		conn:     conn,
		sessions: chatbot.NewSessionsModel(conn),
		now:      time.Now,
	}
}

// GetOrCreate returns the session of (channel, userID), creating it in START
// with an empty context. The unique key on (channel, user_id) makes racing
// creators converge: the loser of the insert reads the winner's row.
func (s *SessionStore) GetOrCreate(ctx context.Context, channel, userID string) (*chatbot.Sessions, error) {
	sess, err := s.sessions.FindOneByChannelUserId(ctx, channel, userID)
	switch {
	case err == nil:
		return sess, nil
	case !errors.Is(err, chatbot.ErrNotFound):
		return nil, fmt.Errorf("find session: %w", err)
	}

	now := s.now()
	sess = &chatbot.Sessions{
		Id:        snowflake.Next(),
		Channel:   channel,
		UserId:    userID,
		State:     string(session.StateStart),
		Context:   "{}",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.sessions.Insert(ctx, sess); err != nil {
		existing, ferr := s.sessions.FindOneByChannelUserId(ctx, channel, userID)
		if ferr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Save writes the update as is. A non nil Context REPLACES the stored blob:
// keys missing from it are gone afterwards. Callers that only mean to change
// some keys must use Merge.
func (s *SessionStore) Save(ctx context.Context, sess *chatbot.Sessions, u Update) error {
	next := *sess
	if u.State != "" {
		next.State = string(u.State)
	}
	if u.Context != nil {
		raw, err := json.Marshal(u.Context)
		if err != nil {
			return fmt.Errorf("encode context: %w", err)
		}
		next.Context = string(raw)
	}
	next.UpdatedAt = s.now()
	if err := s.sessions.Update(ctx, &next); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	*sess = next
	return nil
}

// Merge re-reads the row inside a transaction, merges u.Context over the
// stored blob and writes the whole row back, so no write drops keys it did
// not mention.
func (s *SessionStore) Merge(ctx context.Context, sess *chatbot.Sessions, u Update) error {
	var merged chatbot.Sessions
	err := s.conn.TransactCtx(ctx, func(ctx context.Context, tx sqlx.Session) error {
		model := s.sessions.WithSession(tx)
		current, err := model.FindOne(ctx, sess.Id)
		if err != nil {
			return err
		}
		values := Values(current)
		for k, v := range u.Context {
			values[k] = v
		}
		raw, err := json.Marshal(values)
		if err != nil {
			return fmt.Errorf("encode context: %w", err)
		}
		merged = *current
		merged.Context = string(raw)
		if u.State != "" {
			merged.State = string(u.State)
		}
		merged.UpdatedAt = s.now()
		return model.Update(ctx, &merged)
	})
	if err != nil {
		return fmt.Errorf("merge session: %w", err)
	}
	*sess = merged
	return nil
}

// Values decodes the context blob. Absent or corrupt blobs read as an empty
// map; numbers stay json.Number so snowflake ids keep their precision.
func Values(sess *chatbot.Sessions) map[string]any {
	values := make(map[string]any)
	if sess == nil || sess.Context == "" {
		return values
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(sess.Context)))
	dec.UseNumber()
	if err := dec.Decode(&values); err != nil || values == nil {
		return make(map[string]any)
	}
	return values
}

// State reads the stored state, mapping unknown values to START.
func State(sess *chatbot.Sessions) session.State {
	return session.ParseState(sess.State)
}
