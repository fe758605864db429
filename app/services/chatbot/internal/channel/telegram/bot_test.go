package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strings"
	"sync"
	"testing"
	"time"

	"AeroBot/app/services/chatbot/internal/agent/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	mu         sync.Mutex
	calls      map[string]url.Values
	webhookURL string
	served     bool
}

func (f *fakeAPI) last(method string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := path.Base(r.URL.Path)

	f.mu.Lock()
	f.calls[method] = r.Form
	webhook := f.webhookURL
	first := !f.served
	if method == "getUpdates" {
		f.served = true
	}
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "getMe":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Aero","username":"aero_bot"}}`))
	case "sendMessage":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
	case "getWebhookInfo":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"url":"` + webhook + `","has_custom_certificate":false,"pending_update_count":0}}`))
	case "deleteWebhook", "setWebhook":
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	case "getUpdates":
		if first {
			_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":5,"message":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"hola"}}]}`))
			return
		}
		time.Sleep(20 * time.Millisecond)
		_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func newTestBot(t *testing.T, webhook string) (*Bot, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{calls: map[string]url.Values{}, webhookURL: webhook}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	b, err := NewWithEndpoint("123:abc", srv.URL+"/bot%s/%s", srv.Client(), 1000)
	require.NoError(t, err)
	return b, api
}

func TestSendAttachesKeyboard(t *testing.T) {
	b, api := newTestBot(t, "")

	require.NoError(t, b.Send(context.Background(), "42", "listo", session.StateClose))
	form := api.last("sendMessage")
	assert.Equal(t, "42", form.Get("chat_id"))
	assert.Equal(t, "listo", form.Get("text"))
	assert.Contains(t, form.Get("reply_markup"), "Finalizar")
	assert.Contains(t, form.Get("reply_markup"), `"resize_keyboard":true`)
}

func TestSendRejectsBadChatID(t *testing.T) {
	b, _ := newTestBot(t, "")
	assert.Error(t, b.Send(context.Background(), "abc", "x", session.StateStart))
}

func TestDisabledBot(t *testing.T) {
	var b *Bot
	assert.False(t, b.Enabled())
	assert.ErrorIs(t, b.Send(context.Background(), "1", "x", session.StateStart), ErrNotConfigured)
	assert.ErrorIs(t, b.DeleteWebhook(), ErrNotConfigured)
	assert.ErrorIs(t, b.StartPolling(context.Background(), nil), ErrNotConfigured)

	_, err := NewWithEndpoint("", "http://127.0.0.1/bot%s/%s", http.DefaultClient, 1)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestWebhookManagement(t *testing.T) {
	b, api := newTestBot(t, "https://bot.example.cl/telegram/webhook")

	got, err := b.WebhookURL()
	require.NoError(t, err)
	assert.Equal(t, "https://bot.example.cl/telegram/webhook", got)

	require.NoError(t, b.SetWebhook("https://bot.example.cl/telegram/webhook", "s3cret"))
	assert.Equal(t, "s3cret", api.last("setWebhook").Get("secret_token"))

	require.NoError(t, b.DeleteWebhook())
	assert.Equal(t, "true", api.last("deleteWebhook").Get("drop_pending_updates"))
}

func TestStartPollingRefusesWhileWebhookSet(t *testing.T) {
	b, _ := newTestBot(t, "https://bot.example.cl/telegram/webhook")
	err := b.StartPolling(context.Background(), func(context.Context, Incoming) {})
	assert.ErrorIs(t, err, ErrWebhookActive)
}

func TestStartPollingDeliversMessages(t *testing.T) {
	b, _ := newTestBot(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Incoming, 1)
	require.NoError(t, b.StartPolling(ctx, func(_ context.Context, in Incoming) {
		got <- in
	}))
	assert.ErrorIs(t, b.StartPolling(ctx, nil), ErrAlreadyPolling)

	select {
	case in := <-got:
		assert.Equal(t, Incoming{ChatID: "42", Text: "hola", UpdateID: 5}, in)
	case <-time.After(5 * time.Second):
		t.Fatal("no update delivered")
	}
}

func TestPollingCanRestartAfterStop(t *testing.T) {
	b, _ := newTestBot(t, "")
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, b.StartPolling(ctx, func(context.Context, Incoming) {}))
	assert.True(t, b.Polling())
	cancel()
	require.Eventually(t, func() bool { return !b.Polling() }, 5*time.Second, 10*time.Millisecond)

	ctx2, cancel2 := context.WithCancel(context.Background())
	defer cancel2()
	require.NoError(t, b.StartPolling(ctx2, func(context.Context, Incoming) {}))
	assert.True(t, b.Polling())
}

func TestParseUpdate(t *testing.T) {
	body := `{"update_id":9,"edited_message":{"message_id":3,"date":0,"chat":{"id":-100,"type":"group"},"text":"precio"}}`
	r := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	u, err := ParseUpdate(r)
	require.NoError(t, err)

	in, ok := FromUpdate(u)
	require.True(t, ok)
	assert.Equal(t, Incoming{ChatID: "-100", Text: "precio", UpdateID: 9}, in)

	r = httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(`{"update_id":1,"message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},"sticker":{}}}`))
	u, err = ParseUpdate(r)
	require.NoError(t, err)
	_, ok = FromUpdate(u)
	assert.False(t, ok)
}

func TestSecretMatches(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/telegram/webhook", nil)
	assert.True(t, SecretMatches(r, ""))
	assert.False(t, SecretMatches(r, "s3cret"))
	r.Header.Set(SecretHeader, "s3cret")
	assert.True(t, SecretMatches(r, "s3cret"))
}
