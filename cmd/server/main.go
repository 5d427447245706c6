package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"hrportal/internal/app/server"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := server.Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
