package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"AeroBot/app/services/chatbot/internal/agent/catalog"
	"AeroBot/app/services/chatbot/internal/agent/session"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

// Apology is sent whenever the model cannot produce a usable answer.
const Apology = "Disculpa, en este momento no pude procesar tu consulta. " +
	"¿Me la repites o prefieres que te derive con un asesor?"

const defaultTimeout = 15 * time.Second

var errEmptyAnswer = errors.New("empty model answer")

type Input struct {
	Message string
	State   session.State
	Context map[string]any
}

// Generator answers open ended messages through a chat model. A nil
// *Generator, or one without a model, is disabled.
type Generator struct {
	model   model.BaseChatModel
	catalog *catalog.Catalog
	timeout time.Duration
}

func New(m model.BaseChatModel, cat *catalog.Catalog, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Generator{model: m, catalog: cat, timeout: timeout}
}

func (g *Generator) Enabled() bool {
	return g != nil && g.model != nil
}

func (g *Generator) Generate(ctx context.Context, in Input) (string, error) {
	if !g.Enabled() {
		return "", errors.New("generator disabled")
	}
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(g.systemPrompt()),
		schema.UserMessage(userPrompt(in)),
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", errEmptyAnswer
	}
	return strings.TrimSpace(out.Content), nil
}

// Reply never fails: any model error turns into Apology.
func (g *Generator) Reply(ctx context.Context, in Input) string {
	answer, err := g.Generate(ctx, in)
	if err != nil {
		logx.WithContext(ctx).Errorw("text generator failed",
			logx.Field("state", in.State),
			logx.Field("err", err.Error()))
		return Apology
	}
	return answer
}

func (g *Generator) systemPrompt() string {
	var sb strings.Builder
	sb.WriteString(`Eres el asesor médico-veterinario y vendedor de Aerocámaras Plegables en Chile.
Reglas:
1. Responde en español de Chile, breve (máximo 3 oraciones) y amable.
2. Precios siempre en CLP con punto de miles, por ejemplo $26.990.
3. No inventes productos, precios ni plazos fuera del catálogo.
4. Ante dudas médicas serias sugiere consultar a su médico o veterinario.
5. Cierra guiando al siguiente paso de la compra.`)
	if g.catalog != nil {
		sb.WriteString("\n\nCatálogo:\n")
		sb.WriteString(g.catalog.Listing(catalog.FamilyHuman))
		sb.WriteString("\n")
		sb.WriteString(g.catalog.Listing(catalog.FamilyPet))
	}
	return sb.String()
}

func userPrompt(in Input) string {
	ctxJSON, err := json.Marshal(in.Context)
	if err != nil || len(in.Context) == 0 {
		ctxJSON = []byte("{}")
	}
	return fmt.Sprintf("Estado de la conversación: %s\nContexto: %s\nMensaje del cliente: %s",
		in.State, ctxJSON, strings.TrimSpace(in.Message))
}
