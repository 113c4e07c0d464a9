package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/flagsapp/flags-backend/internal/hottakes"
	"github.com/flagsapp/flags-backend/internal/questions"
	"github.com/flagsapp/flags-backend/internal/seed"
	"github.com/flagsapp/flags-backend/internal/users"
	"github.com/flagsapp/flags-backend/pkg/config"
	"github.com/flagsapp/flags-backend/pkg/db"
	"github.com/flagsapp/flags-backend/pkg/logger"
	"github.com/flagsapp/flags-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	gdb, err := db.Connect(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to connect to database", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	seeder, err := seed.NewSeeder(seed.SeederParams{
		UserRepo:     users.NewRepository(gdb),
		HotTakeRepo:  hottakes.NewRepository(gdb),
		QuestionRepo: questions.NewRepository(gdb),
		Hasher:       security.NewHasher(cfg.Password),
		Logger:       logg,
		AdminConfig:  cfg.Admin,
		SeedConfig:   cfg.Seed,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create seeder", err)
		os.Exit(1)
	}

	if err := seeder.Run(context.Background()); err != nil {
		logg.Error(context.Background(), "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(context.Background(), "seeding complete")
}
