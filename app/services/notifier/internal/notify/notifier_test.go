package notify

import (
	"context"
	"errors"
	"testing"

	"AeroBot/app/common/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

type recordingSender struct {
	msgs []tgbotapi.MessageConfig
	err  error
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		r.msgs = append(r.msgs, m)
	}
	return tgbotapi.Message{}, r.err
}

func TestHandleSendsSummaryToAdminChat(t *testing.T) {
	s := &recordingSender{}
	n := New(s, -1001, 100, nil)

	e := events.Event{Type: events.TypeOrderPlaced, Channel: "web", UserID: "u1", OrderID: 7, Total: 49980, Name: "Juan"}
	require.NoError(t, n.Handle(context.Background(), e))

	require.Len(t, s.msgs, 1)
	assert.Equal(t, int64(-1001), s.msgs[0].ChatID)
	assert.Equal(t, e.Summary(), s.msgs[0].Text)
	assert.Contains(t, s.msgs[0].Text, "$49.980")
}

func TestHandleFiltersTypes(t *testing.T) {
	s := &recordingSender{}
	n := New(s, 1, 100, []string{events.TypeHandoffRequested})

	require.NoError(t, n.Handle(context.Background(), events.Event{Type: events.TypeLeadCaptured}))
	require.NoError(t, n.Handle(context.Background(), events.Event{Type: events.TypeHandoffRequested, Text: "quiero un humano"}))

	require.Len(t, s.msgs, 1)
	assert.Contains(t, s.msgs[0].Text, "quiero un humano")
	assert.False(t, n.Wants(events.TypeOrderPlaced))
}

func TestHandleWithoutSenderOnlyLogs(t *testing.T) {
	logx.Disable()
	n := New(nil, 0, 0, nil)
	assert.NoError(t, n.Handle(context.Background(), events.Event{Type: events.TypeLeadCaptured}))
}

func TestHandleReportsSendErrors(t *testing.T) {
	n := New(&recordingSender{err: errors.New("chat not found")}, 1, 100, nil)
	assert.EqualError(t, n.Handle(context.Background(), events.Event{Type: events.TypeLeadCaptured}), "chat not found")
}

func TestHandleHonoursCancelledContext(t *testing.T) {
	s := &recordingSender{}
	n := New(s, 1, 0.001, nil)
	ctx, cancel := context.WithCancel(context.Background())
	for i := 0; i < 3; i++ {
		require.NoError(t, n.Handle(ctx, events.Event{Type: events.TypeLeadCaptured}))
	}
	cancel()
	assert.Error(t, n.Handle(ctx, events.Event{Type: events.TypeLeadCaptured}))
	assert.Len(t, s.msgs, 3)
}
