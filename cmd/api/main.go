package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"venturelens/internal/config"
	"venturelens/internal/container"
)

func main() {
	// Missing .env is fine in production; environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	c, err := container.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}
	defer c.Close()

	c.Logger.Info("listening on :%s", cfg.Server.Port)
	if err := c.Server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
