package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"lagerbot-backend/internal/config"
	"lagerbot-backend/internal/forecast"
	"lagerbot-backend/internal/models"
	"lagerbot-backend/internal/store"
	"lagerbot-backend/internal/translator"

	"golang.org/x/crypto/bcrypt"
)

// Inventory is the slice of the store the command set needs.
type Inventory interface {
	GetProduct(ctx context.Context, query string) (models.Product, models.StockRecord, error)
	GetHistory(ctx context.Context, query string) ([]models.HistoryEntry, error)
	UpdateStock(ctx context.Context, query string, newQuantity int) (string, error)
	ListLowStock(ctx context.Context, threshold int) ([]store.LowStockRow, error)
	TopConsumption(ctx context.Context, limit int) ([]store.ConsumptionRow, error)
	AddProduct(ctx context.Context, p store.AddProductParams) (string, error)
	Relocate(ctx context.Context, query, newLocation string) (string, error)
	Remove(ctx context.Context, query string) (string, error)
	Rename(ctx context.Context, oldQuery, newName string) (string, string, error)
}

// Knowledge answers free-text questions with supporting passages.
type Knowledge interface {
	Query(ctx context.Context, question string) (string, []string, error)
}

// Dispatcher routes interpreted chat messages to the command set. It never
// lets a raw error reach the user: everything is rendered as readable text
// and the underlying cause is logged.
type Dispatcher struct {
	store      Inventory
	translator translator.Translator
	knowledge  Knowledge
	predict    func([]forecast.Point) int

	adminSecret     string
	adminSecretHash string
}

func NewDispatcher(cfg *config.Config, inv Inventory, tr translator.Translator, kb Knowledge) *Dispatcher {
	return &Dispatcher{
		store:           inv,
		translator:      tr,
		knowledge:       kb,
		predict:         forecast.Predict,
		adminSecret:     cfg.AdminSecret,
		adminSecretHash: cfg.AdminSecretHash,
	}
}

// SetRole switches the session role. Becoming admin requires the shared
// secret; a wrong secret leaves the role untouched and is logged as a
// warning, never throttled.
func (d *Dispatcher) SetRole(sess *Session, target, secret string) string {
	role := Role(strings.ToLower(strings.TrimSpace(target)))
	switch role {
	case RoleUser:
		sess.Role = RoleUser
		return "Rollen är nu användare."
	case RoleAdmin:
		if !d.secretMatches(secret) {
			log.Printf("[WARN] failed admin role attempt")
			return "Fel lösenord, rollen är oförändrad."
		}
		sess.Role = RoleAdmin
		return "Rollen är nu administratör."
	default:
		return fmt.Sprintf("Ogiltig roll %q, välj 'user' eller 'admin'.", target)
	}
}

func (d *Dispatcher) secretMatches(secret string) bool {
	if d.adminSecretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(d.adminSecretHash), []byte(secret)) == nil
	}
	return d.adminSecret != "" && secret == d.adminSecret
}

// GetResponse handles one chat message and always returns displayable
// text. Empty input returns empty output with no side effects.
func (d *Dispatcher) GetResponse(ctx context.Context, sess *Session, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("dispatcher: panic handling message: %v", r)
			reply = msgUnexpected
		}
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	cmd, err := d.translator.Interpret(ctx, text, string(sess.Role))
	if err != nil {
		log.Printf("dispatcher: translator failure: %v", err)
		return "Jag kunde inte tolka meddelandet just nu, försök igen om en stund."
	}

	if cmd.Action == translator.ActionUnknown || cmd.Action == translator.ActionKnowledgeQuery {
		question := text
		if cmd.Action == translator.ActionKnowledgeQuery && len(cmd.Args) > 0 && cmd.Args[0] != "" {
			question = cmd.Args[0]
		}
		return d.answerFromKnowledge(ctx, question)
	}

	entry, ok := commandTable[cmd.Action]
	if !ok {
		return d.answerFromKnowledge(ctx, text)
	}

	if entry.adminOnly && sess.Role != RoleAdmin {
		return msgAccessDenied
	}
	if len(cmd.Args) < entry.minArgs || len(cmd.Args) > entry.maxArgs {
		return fmt.Sprintf("Kommandot %s fick fel antal uppgifter, formulera om meddelandet.", cmd.Action)
	}

	out, err := entry.run(ctx, d, sess, cmd.Args)
	if err != nil {
		return renderFailure(err)
	}
	return out
}

// answerFromKnowledge resolves a free-text question against the knowledge
// base and appends the supporting passages for auditability.
func (d *Dispatcher) answerFromKnowledge(ctx context.Context, question string) string {
	answer, passages, err := d.knowledge.Query(ctx, question)
	if err != nil {
		log.Printf("dispatcher: knowledge query failed: %v", err)
		return msgUnexpected
	}
	if len(passages) == 0 {
		return answer
	}

	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\nKällor:")
	for _, p := range passages {
		b.WriteString("\n- ")
		b.WriteString(p)
	}
	return b.String()
}
