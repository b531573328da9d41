package main

//go:generate swag init

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/satheeshds/invoice-viewer/cmd"
	_ "github.com/satheeshds/invoice-viewer/docs"
	"github.com/satheeshds/invoice-viewer/logger"
)

// @title           Invoice Viewer API
// @version         1.0.0
// @description     API for viewing event invoices, their derived payment state, and initiating payments.
// @host            localhost:8080
// @BasePath        /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Logging until the command's config is loaded
	if err := logger.Setup(logger.DefaultConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cmd.Execute()
}
