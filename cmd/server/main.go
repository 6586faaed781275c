package main

import (
	"log"

	_ "mustrello/docs"
	"mustrello/internal/config"
	"mustrello/internal/server"
)

// @title           Mustrello API
// @version         1.0
// @description     REST API for managing kanban boards, lists, cards and comments.

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
