package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ruleforge/adapters/llm"
	"ruleforge/app"
	"ruleforge/internal/config"
	"ruleforge/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] configuration error: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	generator := llm.NewGenerator(cfg.AI)
	service := app.NewRuleService(generator, cfg.Data.SampleRows)
	server := ui.NewServer(service, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatalf("[Main] server exited: %v", err)
	}
}
