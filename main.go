package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"taskmanager/m/internal/api"
	"taskmanager/m/internal/config"
	"taskmanager/m/internal/database"
	"taskmanager/m/internal/migrations"
	"taskmanager/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	if cfg.SeedAdmin {
		seed.EnsureAdmin(db, cfg.AdminUsername, cfg.AdminPassword)
	}

	handler := api.New(db, cfg.Secret, cfg.TokenTTL)

	log.Printf("Task Manager API starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
