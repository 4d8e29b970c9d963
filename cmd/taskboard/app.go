package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskboard/internal/alerts"
	"taskboard/internal/api"
	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/session"
	"taskboard/internal/update"
)

type env struct {
	cfg    *config.Config
	sess   *session.Store
	client *api.Client
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	dir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDir(); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	sess, err := session.NewStore(cfg.TokenPath(), cfg.UserPath())
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	client := api.NewClient(cfg.ServerURL, sess, func() {
		slog.Warn("server rejected session, credentials cleared")
	})
	return &env{cfg: cfg, sess: sess, client: client}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	closeLog, err := logging.Init(e.cfg.LogPath())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()

	engine := alerts.NewEngine(16)
	engine.Start()
	defer engine.Stop()

	model := update.NewModelWithConfig(e.client, e.sess, update.RuntimeConfig{
		Theme:  e.cfg.Theme,
		Alerts: engine,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("taskboard failed: %w", err)
	}
	return nil
}
