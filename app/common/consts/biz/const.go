package biz

import "time"

type CtxKey string

const (
	ADMIN_KEY CtxKey = "admin"

	TokenExpire = time.Hour * 2

	ACCESSTOKEN = "access_token"
)

// channel tags stored with every session, lead and order
const (
	ChannelWeb       = "web"
	ChannelWhatsApp  = "whatsapp"
	ChannelInstagram = "instagram"
	ChannelTelegram  = "telegram"
)
