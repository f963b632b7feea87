package main

import (
	"context"
	"log"

	"github.com/podiumlabs/podium/app"
	"github.com/podiumlabs/podium/config"
	"github.com/podiumlabs/podium/internal/utils"
)

func main() {
	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting podium in %s mode", cfg.Server.Environment)
	log.Printf("Using DynamoDB table: %s", cfg.DynamoDB.TableName)

	ctx := context.Background()

	application, appErr := app.New(ctx, cfg)
	if appErr != nil {
		log.Fatalf("Failed to initialize application: %v", appErr)
	}

	if appErr := application.Start(); appErr != nil {
		log.Fatalf("Failed to start application: %v", appErr)
	}

	utils.WaitForGracefulShutdown()

	if appErr := application.Stop(); appErr != nil {
		log.Fatalf("Failed to stop application cleanly: %v", appErr)
	}
}
