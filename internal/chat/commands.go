package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"lagerbot-backend/internal/forecast"
	"lagerbot-backend/internal/store"
	"lagerbot-backend/internal/translator"
)

const (
	msgAccessDenied = "Åtkomst nekad: det här kommandot kräver administratörsrollen."
	msgUnexpected   = "Något gick fel, försök igen."

	defaultLowStockThreshold = 10
	defaultTopLimit          = 5
)

// command is one entry in the command set: argument arity, role gate and
// the operation itself. Admin-only entries re-check the role even though
// the dispatcher already gates, so a routing mistake cannot reach the
// store.
type command struct {
	minArgs   int
	maxArgs   int
	adminOnly bool
	run       func(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error)
}

var commandTable = map[string]command{
	translator.ActionBalance:        {minArgs: 1, maxArgs: 1, run: cmdBalance},
	translator.ActionUpdate:         {minArgs: 2, maxArgs: 2, adminOnly: true, run: cmdUpdate},
	translator.ActionLowStock:       {minArgs: 0, maxArgs: 1, adminOnly: true, run: cmdLowStock},
	translator.ActionHistory:        {minArgs: 1, maxArgs: 1, run: cmdHistory},
	translator.ActionForecast:       {minArgs: 1, maxArgs: 1, adminOnly: true, run: cmdForecast},
	translator.ActionAdd:            {minArgs: 3, maxArgs: 5, adminOnly: true, run: cmdAdd},
	translator.ActionTopConsumption: {minArgs: 0, maxArgs: 1, adminOnly: true, run: cmdTopConsumption},
	translator.ActionRelocate:       {minArgs: 2, maxArgs: 2, adminOnly: true, run: cmdRelocate},
	translator.ActionRemove:         {minArgs: 1, maxArgs: 1, adminOnly: true, run: cmdRemove},
	translator.ActionRename:         {minArgs: 2, maxArgs: 2, adminOnly: true, run: cmdRename},
}

// renderFailure maps typed store failures to their user-facing text.
// Anything unrecognized is infrastructure trouble: log it, answer
// generically.
func renderFailure(err error) string {
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		return fmt.Sprintf("Hittade ingen produkt som matchar %q.", nf.Query)
	}
	var amb *store.AmbiguousError
	if errors.As(err, &amb) {
		return fmt.Sprintf("Flera produkter matchar %q (%s), precisera sökningen.",
			amb.Query, strings.Join(amb.Matches, ", "))
	}
	var conflict *store.ConflictError
	if errors.As(err, &conflict) {
		if conflict.Field == "name" {
			return fmt.Sprintf("Det finns redan en produkt som heter %q.", conflict.Value)
		}
		return fmt.Sprintf("Artikelnumret %q används redan av en annan produkt.", conflict.Value)
	}
	if errors.Is(err, store.ErrNegativeQuantity) {
		return "Antalet får inte vara negativt."
	}
	if errors.Is(err, store.ErrEmptyName) {
		return "Produkten måste ha ett namn."
	}
	log.Printf("command: unexpected failure: %v", err)
	return msgUnexpected
}

func parseQuantity(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func cmdBalance(ctx context.Context, d *Dispatcher, _ *Session, args []string) (string, error) {
	product, stock, err := d.store.GetProduct(ctx, args[0])
	if err != nil {
		return "", err
	}

	unit := product.Unit
	if unit == "" {
		unit = "st"
	}
	location := stock.Location
	if location == "" {
		location = "okänd plats"
	}
	return fmt.Sprintf("Saldo för %s: %d %s (plats: %s).", product.Name, stock.Quantity, unit, location), nil
}

func cmdUpdate(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	quantity, ok := parseQuantity(args[1])
	if !ok {
		return "Antalet måste vara ett heltal.", nil
	}
	if quantity < 0 {
		return "Antalet får inte vara negativt.", nil
	}

	name, err := d.store.UpdateStock(ctx, args[0], quantity)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Saldot för %s är nu %d.", name, quantity), nil
}

func cmdLowStock(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	threshold := defaultLowStockThreshold
	if len(args) == 1 && args[0] != "" {
		t, ok := parseQuantity(args[0])
		if !ok || t < 0 {
			return "Gränsvärdet måste vara ett icke-negativt heltal.", nil
		}
		threshold = t
	}

	rows, err := d.store.ListLowStock(ctx, threshold)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return fmt.Sprintf("Inga produkter har saldo på %d eller lägre.", threshold), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Produkter med saldo på %d eller lägre:", threshold)
	for _, r := range rows {
		location := r.Location
		if location == "" {
			location = "okänd plats"
		}
		fmt.Fprintf(&b, "\n- %s: %d st (%s)", r.Name, r.Quantity, location)
	}
	return b.String(), nil
}

func cmdHistory(ctx context.Context, d *Dispatcher, _ *Session, args []string) (string, error) {
	entries, err := d.store.GetHistory(ctx, args[0])
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("Ingen historik hittades för %q.", args[0]), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Historik för %s:", entries[0].ProductName)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n- %s: %d st", e.Date.Format("2006-01-02"), e.Quantity)
	}
	return b.String(), nil
}

func cmdForecast(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	entries, err := d.store.GetHistory(ctx, args[0])
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("Det finns ingen historik att basera en prognos på för %q.", args[0]), nil
	}

	points := make([]forecast.Point, 0, len(entries))
	for _, e := range entries {
		points = append(points, forecast.Point{Date: e.Date, Quantity: e.Quantity})
	}
	predicted := d.predict(points)
	return fmt.Sprintf("Prognos för %s: ungefär %d st nästa period.", entries[0].ProductName, predicted), nil
}

func cmdAdd(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	if strings.TrimSpace(args[0]) == "" {
		return "Produkten måste ha ett namn.", nil
	}
	quantity, ok := parseQuantity(args[1])
	if !ok {
		return "Antalet måste vara ett heltal.", nil
	}
	if quantity < 0 {
		return "Antalet får inte vara negativt.", nil
	}

	params := store.AddProductParams{
		Name:         args[0],
		InitialStock: quantity,
		Location:     args[2],
	}
	if len(args) > 3 {
		params.Specification = args[3]
	}
	if len(args) > 4 {
		params.ArticleNumber = args[4]
	}

	name, err := d.store.AddProduct(ctx, params)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Produkten %s har lagts till med saldo %d.", name, quantity), nil
}

func cmdTopConsumption(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	limit := defaultTopLimit
	if len(args) == 1 && args[0] != "" {
		l, ok := parseQuantity(args[0])
		if !ok || l <= 0 {
			return "Antalet platser måste vara ett positivt heltal.", nil
		}
		limit = l
	}

	rows, err := d.store.TopConsumption(ctx, limit)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "Ingen förbrukning är registrerad ännu.", nil
	}

	var b strings.Builder
	b.WriteString("Mest förbrukade produkter:")
	for i, r := range rows {
		fmt.Fprintf(&b, "\n%d. %s: %d st", i+1, r.Name, r.Total)
	}
	return b.String(), nil
}

func cmdRelocate(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	if strings.TrimSpace(args[1]) == "" {
		return "Ange en ny plats för produkten.", nil
	}

	name, err := d.store.Relocate(ctx, args[0], args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s har flyttats till %s.", name, strings.TrimSpace(args[1])), nil
}

func cmdRemove(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	name, err := d.store.Remove(ctx, args[0])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Produkten %s har tagits bort.", name), nil
}

func cmdRename(ctx context.Context, d *Dispatcher, sess *Session, args []string) (string, error) {
	if sess.Role != RoleAdmin {
		return msgAccessDenied, nil
	}
	oldName, newName, err := d.store.Rename(ctx, args[0], args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Produkten %s heter nu %s.", oldName, newName), nil
}
