package dedup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardWithoutRedisLetsEverythingThrough(t *testing.T) {
	var nilGuard *Guard
	assert.True(t, nilGuard.First(context.Background(), "whatsapp", "wamid.1"))

	g := New(nil, 0)
	assert.Equal(t, 86400, g.ttl)
	assert.True(t, g.First(context.Background(), "whatsapp", "wamid.1"))
	assert.True(t, g.First(context.Background(), "whatsapp", "wamid.1"))
}

func TestGuardIgnoresEmptyID(t *testing.T) {
	g := New(nil, 60)
	assert.True(t, g.First(context.Background(), "telegram", ""))
}
