package generator

import (
	"context"
	"errors"
	"testing"
	"time"

	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/session"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

func TestMain(m *testing.M) {
	logx.Disable()
	m.Run()
}

type fakeModel struct {
	answer *schema.Message
	err    error
	block  bool
	seen   []*schema.Message
}

func (f *fakeModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.seen = input
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.answer, f.err
}

func (f *fakeModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not supported")
}

func TestReplyReturnsModelAnswer(t *testing.T) {
	fm := &fakeModel{answer: schema.AssistantMessage("  Claro, te ayudo.  ", nil)}
	g := New(fm, catalog.Default(), 0)

	got := g.Reply(context.Background(), Input{
		Message: "¿sirve para asma?",
		State:   session.StateQualify,
		Context: map[string]any{"family": "humana"},
	})
	assert.Equal(t, "Claro, te ayudo.", got)

	require.Len(t, fm.seen, 2)
	assert.Equal(t, schema.System, fm.seen[0].Role)
	assert.Contains(t, fm.seen[0].Content, "AERO-H-ADUL")
	assert.Contains(t, fm.seen[1].Content, "QUALIFY")
	assert.Contains(t, fm.seen[1].Content, `"family":"humana"`)
	assert.Contains(t, fm.seen[1].Content, "¿sirve para asma?")
}

func TestReplyFallsBackOnError(t *testing.T) {
	g := New(&fakeModel{err: errors.New("boom")}, nil, 0)
	assert.Equal(t, Apology, g.Reply(context.Background(), Input{Message: "x"}))
}

func TestReplyFallsBackOnBlankAnswer(t *testing.T) {
	g := New(&fakeModel{answer: schema.AssistantMessage("   ", nil)}, nil, 0)
	assert.Equal(t, Apology, g.Reply(context.Background(), Input{Message: "x"}))

	g = New(&fakeModel{}, nil, 0)
	assert.Equal(t, Apology, g.Reply(context.Background(), Input{Message: "x"}))
}

func TestReplyFallsBackOnTimeout(t *testing.T) {
	g := New(&fakeModel{block: true}, nil, 20*time.Millisecond)
	assert.Equal(t, Apology, g.Reply(context.Background(), Input{Message: "x"}))
}

func TestDisabled(t *testing.T) {
	var nilGen *Generator
	assert.False(t, nilGen.Enabled())
	assert.Equal(t, Apology, nilGen.Reply(context.Background(), Input{}))

	g := New(nil, nil, 0)
	assert.False(t, g.Enabled())
	_, err := g.Generate(context.Background(), Input{})
	assert.Error(t, err)
}
