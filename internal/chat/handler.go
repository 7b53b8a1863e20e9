package chat

import (
	"strings"

	"lagerbot-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

type chatRequest struct {
	Text string `json:"text"`
}

type roleRequest struct {
	Role   string `json:"role"`
	Secret string `json:"secret"`
}

// bearerToken pulls the raw token out of the Authorization header, if any.
func bearerToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// ChatHandler answers one chat message. The session role comes from the
// bearer token; no or an invalid token means plain user.
func ChatHandler(cfg *config.Config, d *Dispatcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body chatRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ogiltig förfrågan")
		}

		sess := SessionFromToken(cfg.JWTSecret, bearerToken(c))
		reply := d.GetResponse(c.UserContext(), sess, body.Text)

		return c.JSON(fiber.Map{"reply": reply})
	}
}

// SetRoleHandler switches the session role and returns a fresh token
// carrying whatever role the session ended up with.
func SetRoleHandler(cfg *config.Config, d *Dispatcher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body roleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ogiltig förfrågan")
		}

		sess := SessionFromToken(cfg.JWTSecret, bearerToken(c))
		message := d.SetRole(sess, body.Role, body.Secret)

		token, err := IssueToken(cfg.JWTSecret, sess)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kunde inte skapa sessionstoken")
		}

		return c.JSON(fiber.Map{
			"message": message,
			"role":    sess.Role,
			"token":   token,
		})
	}
}
