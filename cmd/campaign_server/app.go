package main

import (
	"log/slog"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/pryv/campaign-manager/internal/config"
	"github.com/pryv/campaign-manager/internal/database"
)

type App struct {
	logger *slog.Logger
	config *config.AppConfig
	dbm    *database.DatabaseManager
}

func NewApp(cfg *config.AppConfig) *App {
	db, err := gorm.Open(sqlite.Open(cfg.DB()), &gorm.Config{})
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}

	dbm := database.New(db)

	if err := dbm.Migrate(); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	return &App{
		logger: slog.Default(),
		config: cfg,
		dbm:    dbm,
	}
}
