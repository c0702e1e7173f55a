// cmd/seeder/main.go
//
// One-shot setup tool: creates the database schema and writes a sample
// recipient sheet for trying out the sender.
package main

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/mailburst/mailburst/internal/config"
	"github.com/mailburst/mailburst/internal/db"
	"github.com/mailburst/mailburst/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		defer conn.Close()

		if err := db.EnsureSchema(conn); err != nil {
			log.Fatal().Err(err).Msg("schema setup failed")
		}
		log.Info().Msg("schema ready")
	} else {
		log.Warn().Msg("DATABASE_URL not set, skipping schema setup")
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("prepare upload dir")
	}

	samplePath := filepath.Join(cfg.Upload.Dir, "sample_recipients.csv")
	f, err := os.Create(samplePath)
	if err != nil {
		log.Fatal().Err(err).Msg("create sample sheet")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := [][]string{
		{"Name", "Email", "CC", "BCC"},
		{"Ada Lovelace", "ada@example.com", "team@example.com", ""},
		{"Grace Hopper", "grace@example.com; g.hopper@example.org", "", "archive@example.com"},
		{"", "alan@example.com", "", ""},
	}
	// WriteAll flushes before returning.
	if err := w.WriteAll(rows); err != nil {
		log.Fatal().Err(err).Msg("write sample sheet")
	}

	log.Info().Str("path", samplePath).Msg("sample sheet written")
}
