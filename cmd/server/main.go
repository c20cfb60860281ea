package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/autotransformers/site/internal/server"
	"github.com/autotransformers/site/internal/server/config"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
