package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/NoaKun34/Billed-app-FR-Front/cmd/tui/internal/view"
	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
	billStore "github.com/NoaKun34/Billed-app-FR-Front/internal/bill/store"
	"github.com/NoaKun34/Billed-app-FR-Front/internal/config"
	"github.com/NoaKun34/Billed-app-FR-Front/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	sess, err := session.Open(cfg.Session.DBPath)
	if err != nil {
		slog.Error("failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sess.Close()

	token, err := sess.Token()
	if err != nil {
		slog.Error("failed to read session token", "error", err)
		os.Exit(1)
	}

	svc := bill.NewService(billStore.New(cfg.API.BaseURL, token, cfg.API.Timeout))

	p := tea.NewProgram(view.NewApp(sess, svc))
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
