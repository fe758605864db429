package dedup

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

const keyPrefix = "chatbot:seen:"

// Guard remembers delivered message ids so webhook retries run one turn only.
// A nil Guard, or one without redis, lets everything through.
type Guard struct {
	rds *redis.Redis
	ttl int
}

func New(rds *redis.Redis, ttlSeconds int) *Guard {
	if ttlSeconds <= 0 {
		ttlSeconds = 86400
	}
	return &Guard{rds: rds, ttl: ttlSeconds}
}

// First reports whether id is seen for the first time on channel. Redis
// errors fail open.
func (g *Guard) First(ctx context.Context, channel, id string) bool {
	if g == nil || g.rds == nil || id == "" {
		return true
	}
	ok, err := g.rds.SetnxExCtx(ctx, keyPrefix+channel+":"+id, "1", g.ttl)
	if err != nil {
		logx.WithContext(ctx).Errorw("dedup check failed",
			logx.Field("channel", channel),
			logx.Field("message_id", id),
			logx.Field("err", err.Error()))
		return true
	}
	return ok
}
