package meta

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"AeroBot/app/common/consts/biz"

	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("meta channel not configured")

type textBody struct {
	Body string `json:"body"`
}

type whatsappMessage struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Text             textBody `json:"text"`
}

type recipient struct {
	ID string `json:"id"`
}

type instagramText struct {
	Text string `json:"text"`
}

type instagramMessage struct {
	Recipient recipient     `json:"recipient"`
	Message   instagramText `json:"message"`
}

// Client sends text replies through the Graph API.
type Client struct {
	http    *resty.Client
	token   string
	phoneID string
}

func NewClient(graphURL, accessToken, phoneID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(graphURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		token:   accessToken,
		phoneID: phoneID,
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.token != ""
}

// Send delivers body to a WhatsApp number or an Instagram scoped user id.
func (c *Client) Send(ctx context.Context, channel, to, body string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}
	var (
		path    string
		payload any
	)
	switch channel {
	case biz.ChannelWhatsApp:
		if c.phoneID == "" {
			return fmt.Errorf("%w: whatsapp phone number id", ErrNotConfigured)
		}
		path = "/" + c.phoneID + "/messages"
		payload = whatsappMessage{MessagingProduct: "whatsapp", To: to, Type: "text", Text: textBody{Body: body}}
	case biz.ChannelInstagram:
		path = "/me/messages"
		payload = instagramMessage{Recipient: recipient{ID: to}, Message: instagramText{Text: body}}
	default:
		return fmt.Errorf("meta: unsupported channel %q", channel)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetBody(payload).
		Post(path)
	if err != nil {
		return fmt.Errorf("meta send: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("meta send: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
