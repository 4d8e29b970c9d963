// taskboardd is the development backend for the taskboard client: the full
// REST surface over a local sqlite file.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"taskboard/internal/server"
	"taskboard/internal/server/storage"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskboardd",
		Short:   "Development API server for taskboard",
		Version: Version,
		RunE:    runServer,
	}
	rootCmd.Flags().String("addr", ":8080", "listen address")
	rootCmd.Flags().String("db", "taskboard.db", "sqlite database path")
	rootCmd.Flags().String("secret", "", "JWT signing secret (or TASKBOARD_SECRET)")
	rootCmd.Flags().Duration("token-ttl", 24*time.Hour, "issued token lifetime")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	dbPath, _ := cmd.Flags().GetString("db")
	secret, _ := cmd.Flags().GetString("secret")
	tokenTTL, _ := cmd.Flags().GetDuration("token-ttl")

	if secret == "" {
		secret = os.Getenv("TASKBOARD_SECRET")
	}
	if secret == "" {
		return fmt.Errorf("a JWT secret is required: pass --secret or set TASKBOARD_SECRET")
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = repo.Close() }()

	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.NewServer(repo, server.Config{
		JWTSecret: []byte(secret),
		TokenTTL:  tokenTTL,
	}, log)

	return srv.Run(addr)
}
