package main

import (
	"log"

	"darzi-backend/internal/bootstrap"
	"darzi-backend/internal/shared/config"
	"darzi-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app := bootstrap.Build(cfg)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (mode=%s)", addr, cfg.Mode)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
