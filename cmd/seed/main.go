package main

import (
	"context"
	"flag"
	"log"

	"equiptrack/internal/config"
	"equiptrack/internal/database"
	"equiptrack/internal/inventory"
	"equiptrack/internal/pkg/logger"
	"equiptrack/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	reset := flag.Bool("reset", false, "delete existing rows before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.LogLevel, true)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("DB connection failed", zap.Error(err))
	}

	lg.Info("running AutoMigrate")
	if err := repository.Migrate(db); err != nil {
		lg.Fatal("AutoMigrate failed", zap.Error(err))
	}

	if *reset {
		// requests reference equipment and users, so they go first
		lg.Info("cleaning old data")
		for _, table := range []string{"equipment_requests", "equipment", "users"} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				lg.Fatal("cleanup failed", zap.String("table", table), zap.Error(err))
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		lg.Fatal("hash seed password", zap.Error(err))
	}

	ctx := context.Background()
	store := repository.NewStore(db)
	fixture := inventory.Fixture()

	for _, u := range fixture.Users {
		u.PasswordHash = string(hash)
		if err := store.CreateUser(ctx, &u); err != nil {
			lg.Warn("user not seeded", zap.String("email", u.Email), zap.Error(err))
			continue
		}
		lg.Info("user created", zap.String("email", u.Email), zap.String("role", string(u.Role)))
	}

	for _, e := range fixture.Equipment {
		if err := store.CreateEquipment(ctx, &e); err != nil {
			lg.Warn("equipment not seeded", zap.String("id", e.ID), zap.Error(err))
		}
	}

	for _, r := range fixture.Requests {
		if err := store.CreateRequest(ctx, &r); err != nil {
			lg.Warn("request not seeded", zap.String("id", r.ID), zap.Error(err))
		}
	}

	lg.Info("seed completed",
		zap.Int("users", len(fixture.Users)),
		zap.Int("equipment", len(fixture.Equipment)),
		zap.Int("requests", len(fixture.Requests)),
		zap.String("password_env", "SEED_PASSWORD"),
	)
}
