package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/SamOutabrae/Sprocket-hypixel/app"
	"github.com/SamOutabrae/Sprocket-hypixel/health"
	"github.com/SamOutabrae/Sprocket-hypixel/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.Debug("No .env file found, relying on environment: %v", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		health.StartHealthServer(port)
	}

	application, err := app.New()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
