package channel

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"AeroBot/app/common/consts/biz"
	"AeroBot/app/services/chatbot/internal/agent/session"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	channel string
	to      string
	text    string
	state   session.State
}

type fakeSender struct {
	mu      sync.Mutex
	enabled bool
	err     error
	got     []sent
	done    chan struct{}
}

func newFakeSender(enabled bool) *fakeSender {
	return &fakeSender{enabled: enabled, done: make(chan struct{}, 8)}
}

func (f *fakeSender) Enabled() bool { return f.enabled }

func (f *fakeSender) record(s sent) error {
	f.mu.Lock()
	f.got = append(f.got, s)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

type fakeMeta struct{ *fakeSender }

func (f fakeMeta) Send(_ context.Context, channel, to, body string) error {
	return f.record(sent{channel: channel, to: to, text: body})
}

type fakeTelegram struct{ *fakeSender }

func (f fakeTelegram) Send(_ context.Context, chatID, text string, st session.State) error {
	return f.record(sent{channel: biz.ChannelTelegram, to: chatID, text: text, state: st})
}

type fakeQueue struct {
	err   error
	tasks []*asynq.Task
	opts  []asynq.Option
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	q.opts = opts
	return &asynq.TaskInfo{ID: "1", Queue: DeliveryQueue}, nil
}

func waitSent(t *testing.T, f *fakeSender) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(2 * time.Second):
		t.Fatal("reply not delivered")
	}
}

func TestPostEnqueuesWhenQueueConfigured(t *testing.T) {
	meta := newFakeSender(true)
	q := &fakeQueue{}
	o := NewOutbox(fakeMeta{meta}, nil, q)

	o.Post(context.Background(), Message{Channel: biz.ChannelWhatsApp, To: "569", Text: "hola"})

	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskDeliver, q.tasks[0].Type())
	var m Message
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &m))
	assert.Equal(t, Message{Channel: biz.ChannelWhatsApp, To: "569", Text: "hola"}, m)
	assert.Empty(t, meta.got)
}

func TestPostSendsInlineWithoutQueue(t *testing.T) {
	tg := newFakeSender(true)
	o := NewOutbox(nil, fakeTelegram{tg}, nil)

	o.Post(context.Background(), Message{Channel: biz.ChannelTelegram, To: "42", Text: "hola", State: session.StateQualify})
	waitSent(t, tg)

	tg.mu.Lock()
	defer tg.mu.Unlock()
	assert.Equal(t, []sent{{channel: biz.ChannelTelegram, to: "42", text: "hola", state: session.StateQualify}}, tg.got)
}

func TestPostFallsBackInlineWhenEnqueueFails(t *testing.T) {
	meta := newFakeSender(true)
	o := NewOutbox(fakeMeta{meta}, nil, &fakeQueue{err: errors.New("redis down")})

	ctx, cancel := context.WithCancel(context.Background())
	o.Post(ctx, Message{Channel: biz.ChannelInstagram, To: "ig", Text: "hola"})
	cancel()
	waitSent(t, meta)
}

func TestSendSkipsDisabledChannels(t *testing.T) {
	meta := newFakeSender(false)
	o := NewOutbox(fakeMeta{meta}, nil, nil)

	assert.NoError(t, o.Send(context.Background(), Message{Channel: biz.ChannelWhatsApp, To: "1", Text: "x"}))
	assert.NoError(t, o.Send(context.Background(), Message{Channel: biz.ChannelTelegram, To: "1", Text: "x"}))
	assert.Empty(t, meta.got)
	assert.ErrorIs(t, o.Send(context.Background(), Message{Channel: "fax"}), ErrUnknownChannel)
}

func TestProcessTask(t *testing.T) {
	tg := newFakeSender(true)
	o := NewOutbox(nil, fakeTelegram{tg}, nil)

	payload, err := json.Marshal(Message{Channel: biz.ChannelTelegram, To: "42", Text: "listo", State: session.StateDone})
	require.NoError(t, err)
	require.NoError(t, o.ProcessTask(context.Background(), asynq.NewTask(TaskDeliver, payload)))
	assert.Equal(t, session.StateDone, tg.got[0].state)

	err = o.ProcessTask(context.Background(), asynq.NewTask(TaskDeliver, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	payload, _ = json.Marshal(Message{Channel: "fax"})
	err = o.ProcessTask(context.Background(), asynq.NewTask(TaskDeliver, payload))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	tg.err = errors.New("telegram 502")
	payload, _ = json.Marshal(Message{Channel: biz.ChannelTelegram, To: "42", Text: "x"})
	err = o.ProcessTask(context.Background(), asynq.NewTask(TaskDeliver, payload))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}
