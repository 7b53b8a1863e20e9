package main

import (
	"log"

	"lagerbot-backend/internal/chat"
	"lagerbot-backend/internal/config"
	"lagerbot-backend/internal/database"
	"lagerbot-backend/internal/knowledge"
	"lagerbot-backend/internal/store"
	"lagerbot-backend/internal/translator"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	inventory := store.New(db)
	llm := translator.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	kb := knowledge.Load(cfg.KnowledgeDir, llm)
	dispatcher := chat.NewDispatcher(cfg, inventory, llm, kb)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Oväntat serverfel",
			})
		},
	})

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	api.Post("/session/role", chat.SetRoleHandler(cfg, dispatcher))
	api.Post("/chat", chat.ChatHandler(cfg, dispatcher))

	log.Println("Server listening on port", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
