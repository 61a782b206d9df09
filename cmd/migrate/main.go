// Command migrate runs schema operations for the backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"videotube/internal/config"
	"videotube/internal/database"

	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|status>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = database.Close() }()

	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		log.Println("schema migrated")
	case "status":
		return status(db)
	default:
		return usage()
	}
	return nil
}

func status(db *gorm.DB) error {
	migrator := db.Migrator()
	missing := 0
	for _, m := range database.PersistentModels() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("parse %T: %w", m, err)
		}
		state := "present"
		if !migrator.HasTable(m) {
			state = "missing"
			missing++
		}
		log.Printf("%-16s %s", stmt.Schema.Table, state)
	}
	if missing > 0 {
		return fmt.Errorf("%d table(s) missing; run `migrate up`", missing)
	}
	return nil
}
