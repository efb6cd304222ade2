// A local stand-in for the remote Billed store, for development against
// fixture data.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/config"
	billedHttp "github.com/NoaKun34/Billed-app-FR-Front/internal/http"
	billsHandler "github.com/NoaKun34/Billed-app-FR-Front/internal/http/bills"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	router := billedHttp.New(billsHandler.NewHandler(billsHandler.Seed()))

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting fixture store", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
