package main

import (
	"context"
	"log"

	"github.com/01moynul/sales-management-golang/internal/ai"
	"github.com/01moynul/sales-management-golang/internal/auth"
	"github.com/01moynul/sales-management-golang/internal/config"
	"github.com/01moynul/sales-management-golang/internal/database"
	"github.com/01moynul/sales-management-golang/internal/handlers"
	"github.com/01moynul/sales-management-golang/internal/managers"
	"github.com/01moynul/sales-management-golang/internal/routes"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg := config.Load()

	// 1. --- Database Session ---
	// A failed connect is logged and leaves the session disconnected;
	// the server still starts and every page reports the failure.
	conn := database.Connect(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
	})
	defer conn.Close()

	// 2. --- Admin Login (optional) ---
	var authenticator *auth.Authenticator
	if cfg.AuthEnabled() {
		authenticator = auth.New(cfg.JWTSecret, cfg.AdminUser, cfg.AdminPasswordHash)
	} else {
		log.Println("WARNING: ADMIN_PASSWORD_HASH is not set. The admin UI and API are open.")
	}

	// 3. --- Sales Assistant (optional) ---
	var assistant *ai.Assistant
	if cfg.GeminiAPIKey != "" {
		// Model-written SQL goes to the read-only session when one is configured.
		var assistantDB ai.Querier = conn
		if cfg.DBReadOnlyDSN != "" {
			readOnly := database.ConnectDSN(cfg.DBReadOnlyDSN)
			defer readOnly.Close()
			assistantDB = readOnly
		} else {
			log.Println("WARNING: DB_DSN_READONLY is not set. The sales assistant shares the main database session.")
		}

		var err error
		assistant, err = ai.NewAssistant(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, assistantDB)
		if err != nil {
			log.Printf("WARNING: Sales assistant disabled: %v", err)
		} else {
			defer assistant.Close()
		}
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:        conn,
		Managers:  managers.New(conn),
		Auth:      authenticator,
		Assistant: assistant,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg.CORSOrigin)

	// --- Start Server ---
	log.Printf("Starting Sales Management server on %s...", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
