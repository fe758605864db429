package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	commonconfig "AeroBot/app/common/config"
	"AeroBot/app/common/consts/biz"
	"AeroBot/app/common/consts/errno"
	"AeroBot/app/common/middleware"
	"AeroBot/app/common/response"
	"AeroBot/app/common/util"
	"AeroBot/app/dal/chatbot"
	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/conversation"
	"AeroBot/app/services/chatbot/internal/agent/reply"
	"AeroBot/app/services/chatbot/internal/agent/session"
	"AeroBot/app/services/chatbot/internal/channel"
	"AeroBot/app/services/chatbot/internal/channel/meta"
	"AeroBot/app/services/chatbot/internal/channel/telegram"
	"AeroBot/app/services/chatbot/internal/config"
	"AeroBot/app/services/chatbot/internal/dedup"
	"AeroBot/app/services/chatbot/internal/store"
	"AeroBot/app/services/chatbot/internal/svc"
	"AeroBot/app/services/chatbot/internal/types"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/go-zero/rest/pathvar"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminSecret = "test-secret"
	adminPass   = "s3cret-pass"
)

func TestMain(m *testing.M) {
	logx.Disable()
	httpx.SetErrorHandlerCtx(response.ErrorHandler)
	os.Exit(m.Run())
}

type queued struct {
	mu   sync.Mutex
	msgs []channel.Message
}

func (q *queued) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	var m channel.Message
	if err := json.Unmarshal(task.Payload(), &m); err != nil {
		return nil, err
	}
	q.mu.Lock()
	q.msgs = append(q.msgs, m)
	q.mu.Unlock()
	return &asynq.TaskInfo{ID: strconv.Itoa(len(q.msgs))}, nil
}

func (q *queued) all() []channel.Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]channel.Message(nil), q.msgs...)
}

func newTestContext(t *testing.T, bot *telegram.Bot) (*svc.ServiceContext, *queued) {
	t.Helper()
	conn := sqlx.NewSqlConn(commonconfig.DriverSqlite, commonconfig.SqliteDSN(filepath.Join(t.TempDir(), "chatbot.db")))
	require.NoError(t, commonconfig.ApplySchema(context.Background(), conn, chatbot.Schema))

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.MinCost)
	require.NoError(t, err)

	c := config.Config{
		Meta:     config.MetaConf{VerifyToken: "verify-me"},
		Telegram: config.TelegramConf{SecretToken: "tg-secret"},
		Admin: config.AdminConf{
			AccessSecret: adminSecret,
			AccessExpire: 3600,
			Username:     "admin",
			PasswordHash: string(hash),
		},
	}
	sessions := store.NewSessionStore(conn)
	orders := store.NewOrderStore(conn)
	metaClient := meta.NewClient("http://127.0.0.1:1", "", "", 0)
	q := &queued{}

	return &svc.ServiceContext{
		Config:   c,
		DB:       conn,
		Sessions: sessions,
		Orders:   orders,
		Catalog:  catalog.Default(),
		Driver: conversation.NewDriver(conversation.Deps{
			Sessions:   sessions,
			Orders:     orders,
			Styler:     reply.NewStyler(reply.First),
			PaymentURL: "https://pagos.example.cl",
		}),
		Meta:           metaClient,
		Telegram:       bot,
		Outbox:         channel.NewOutbox(metaClient, bot, q),
		Dedup:          dedup.New(nil, 0),
		AuthMiddleware: middleware.NewAuthMiddleware(adminSecret).Handle,
		Lifetime:       context.Background(),
	}, q
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	sc, _ := newTestContext(t, nil)
	w := doJSON(t, HealthHandler(sc), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.OK("Chatbot Aerocámaras (CLP) activo"), decode[response.Status](t, w))
}

func TestWebchatSendAssignsUserAndAdvances(t *testing.T) {
	sc, _ := newTestContext(t, nil)

	w := doJSON(t, WebchatSendHandler(sc), http.MethodPost, "/webchat/send", `{"text":"hola"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[types.WebchatSendResponse](t, w)
	assert.Len(t, first.UserId, 36)
	assert.Equal(t, string(session.StateQualify), first.State)
	assert.NotEmpty(t, first.Reply)

	w = doJSON(t, WebchatSendHandler(sc), http.MethodPost, "/webchat/send",
		`{"user_id":"`+first.UserId+`","text":"mascota"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[types.WebchatSendResponse](t, w)
	assert.Equal(t, first.UserId, second.UserId)
	assert.Equal(t, string(session.StatePetDetail), second.State)
	assert.Contains(t, second.Reply, "MASCOTAS")
}

func TestWebchatSendRejectsBadInput(t *testing.T) {
	sc, _ := newTestContext(t, nil)

	w := doJSON(t, WebchatSendHandler(sc), http.MethodPost, "/webchat/send", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errno.InvalidParam, decode[response.Response](t, w).StatusCode)

	w = doJSON(t, WebchatSendHandler(sc), http.MethodPost, "/webchat/send", `{"user_id":"u1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetaVerify(t *testing.T) {
	sc, _ := newTestContext(t, nil)

	w := doJSON(t, MetaVerifyHandler(sc), http.MethodGet,
		"/meta/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=1158201444", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1158201444", w.Body.String())

	w = doJSON(t, MetaVerifyHandler(sc), http.MethodGet,
		"/meta/webhook?hub.mode=subscribe&hub.verify_token=nope&hub.challenge=1", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMetaWebhookRunsTurnsAndQueuesReplies(t *testing.T) {
	sc, q := newTestContext(t, nil)
	body := `{"object":"whatsapp_business_account","entry":[{"changes":[{"field":"messages","value":{
		"messaging_product":"whatsapp",
		"messages":[{"id":"wamid.1","from":"56911112222","type":"text","text":{"body":"hola"}}]}}]}]}`

	w := doJSON(t, MetaWebhookHandler(sc), http.MethodPost, "/meta/webhook", body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	msgs := q.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, biz.ChannelWhatsApp, msgs[0].Channel)
	assert.Equal(t, "56911112222", msgs[0].To)
	assert.NotEmpty(t, msgs[0].Text)

	sess, err := sc.Sessions.GetOrCreate(context.Background(), biz.ChannelWhatsApp, "56911112222")
	require.NoError(t, err)
	assert.Equal(t, session.StateQualify, store.State(sess))
}

func TestMetaWebhookAlwaysAcks(t *testing.T) {
	sc, q := newTestContext(t, nil)

	w := doJSON(t, MetaWebhookHandler(sc), http.MethodPost, "/meta/webhook", `not json`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Empty(t, q.all())
}

func fakeBot(t *testing.T) *telegram.Bot {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Aero","username":"aero_bot"}}`))
	}))
	t.Cleanup(srv.Close)
	b, err := telegram.NewWithEndpoint("1:abc", srv.URL+"/bot%s/%s", srv.Client(), 100)
	require.NoError(t, err)
	return b
}

func telegramRequest(secret, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if secret != "" {
		r.Header.Set(telegram.SecretHeader, secret)
	}
	return r
}

func TestTelegramWebhook(t *testing.T) {
	sc, q := newTestContext(t, fakeBot(t))
	update := `{"update_id":100,"message":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"hola"}}`

	w := httptest.NewRecorder()
	TelegramWebhookHandler(sc)(w, telegramRequest("wrong", update))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"invalid secret token"}`, w.Body.String())
	assert.Empty(t, q.all())

	w = httptest.NewRecorder()
	TelegramWebhookHandler(sc)(w, telegramRequest("tg-secret", update))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	msgs := q.all()
	require.Len(t, msgs, 1)
	assert.Equal(t, channel.Message{Channel: biz.ChannelTelegram, To: "42", Text: msgs[0].Text, State: session.StateQualify}, msgs[0])
}

func TestTelegramWebhookWithoutBot(t *testing.T) {
	sc, q := newTestContext(t, nil)
	w := httptest.NewRecorder()
	TelegramWebhookHandler(sc)(w, telegramRequest("tg-secret", `{"update_id":1}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Empty(t, q.all())
}

func TestTelegramPollingNeedsBot(t *testing.T) {
	sc, _ := newTestContext(t, nil)

	w := doJSON(t, StartPollingHandler(sc), http.MethodPost, "/telegram/start-polling", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errno.ChannelDisabled, decode[response.Response](t, w).StatusCode)

	w = doJSON(t, DeleteWebhookHandler(sc), http.MethodPost, "/telegram/delete-webhook", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLogin(t *testing.T) {
	sc, _ := newTestContext(t, nil)

	w := doJSON(t, AdminLoginHandler(sc), http.MethodPost, "/admin/login",
		`{"username":"admin","password":"`+adminPass+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[types.AdminLoginResponse](t, w)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := util.ParseToken(resp.AccessToken, adminSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, biz.ACCESSTOKEN, cookies[0].Name)
	assert.Equal(t, resp.AccessToken, cookies[0].Value)

	w = doJSON(t, AdminLoginHandler(sc), http.MethodPost, "/admin/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, errno.InvalidCredentials, decode[response.Response](t, w).StatusCode)

	w = doJSON(t, AdminLoginHandler(sc), http.MethodPost, "/admin/login", `{"username":"root","password":"`+adminPass+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func adminRequest(t *testing.T, target string) *http.Request {
	t.Helper()
	token, _, err := util.SignToken(adminSecret, time.Hour, "admin")
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func TestGetOrder(t *testing.T) {
	sc, _ := newTestContext(t, nil)
	ctx := context.Background()
	lines := []session.Line{{SKU: "AERO-M-PM", Name: "Perro Mediano", UnitPrice: 24990, Qty: 2}}
	orderID, _, err := sc.Orders.Checkout(ctx, store.Lead{Channel: biz.ChannelWeb, UserID: "u1", Name: "Juan"}, lines)
	require.NoError(t, err)

	h := sc.AuthMiddleware(GetOrderHandler(sc))
	id := strconv.FormatInt(orderID, 10)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/admin/order/"+id, nil)
	h(w, pathvar.WithVars(r, map[string]string{"id": id}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	h(w, pathvar.WithVars(adminRequest(t, "/admin/order/"+id), map[string]string{"id": id}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	o := decode[types.OrderInfo](t, w)
	assert.Equal(t, orderID, o.Id)
	assert.Equal(t, int64(49980), o.TotalClp)
	assert.Equal(t, "$49.980", o.Total)
	assert.Equal(t, "pending", o.Status)
	assert.Equal(t, []types.OrderItem{{Sku: "AERO-M-PM", Name: "Perro Mediano", Qty: 2, UnitPriceClp: 24990}}, o.Items)

	w = httptest.NewRecorder()
	h(w, pathvar.WithVars(adminRequest(t, "/admin/order/1"), map[string]string{"id": "1"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, errno.OrderNotFound, decode[response.Response](t, w).StatusCode)
}

func TestListLeadsNewestFirst(t *testing.T) {
	sc, _ := newTestContext(t, nil)
	ctx := context.Background()
	_, err := sc.Orders.PersistLead(ctx, store.Lead{Channel: biz.ChannelWeb, UserID: "u1", Name: "Primera"})
	require.NoError(t, err)
	_, err = sc.Orders.PersistLead(ctx, store.Lead{Channel: biz.ChannelTelegram, UserID: "42", Name: "Segunda"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	sc.AuthMiddleware(ListLeadsHandler(sc))(w, adminRequest(t, "/admin/lead"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[types.ListLeadsResponse](t, w)
	require.Len(t, resp.Leads, 2)
	assert.Equal(t, "Segunda", resp.Leads[0].Name)
	assert.Equal(t, "Primera", resp.Leads[1].Name)
}
