package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|validate")
	flag.Parse()

	// validate only inspects the embedded files
	if *cmd == "validate" {
		if err := migrate.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
	})

	gdb, err := db.Connect(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	sqlDB, err := gdb.DB()
	if err != nil {
		logg.Error(ctx, "failed to unwrap database handle", err)
		os.Exit(1)
	}

	switch *cmd {
	case "up":
		if err := migrate.Up(ctx, sqlDB); err != nil {
			logg.Error(ctx, "goose up failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "migrations applied")

	case "down":
		if err := migrate.DownOne(ctx, sqlDB); err != nil {
			logg.Error(ctx, "goose down failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "rolled back one migration")

	case "status":
		statuses, err := migrate.Status(ctx, sqlDB)
		if err != nil {
			logg.Error(ctx, "goose status failed", err)
			os.Exit(1)
		}
		for _, status := range statuses {
			fmt.Printf("%-10s %s\n", status.State, status.Source.Path)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", *cmd)
		os.Exit(1)
	}
}
