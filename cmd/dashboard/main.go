package main

import (
	"context"
	"log"

	"dept-dashboard/internal/api"
	"dept-dashboard/internal/config"
	"dept-dashboard/internal/dashboard"
	"dept-dashboard/internal/store"
	"dept-dashboard/pkg/utils"

	_ "dept-dashboard/docs"
)

// @title Department Dashboard API
// @version 1.0
// @description Employee analytics dashboard rendering department charts from a relational database.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Init render history DB
	if err := store.InitHistory(cfg.HistoryPath); err != nil {
		log.Fatalf("failed to init history store: %v", err)
	}

	svc := &dashboard.Service{
		Open: func(ctx context.Context) (dashboard.Source, error) {
			src, err := store.OpenSource(ctx, cfg.DSN())
			if err != nil {
				return nil, err
			}
			return src, nil
		},
		Static: utils.NewStaticDir(cfg.StaticDir),
	}

	r := api.NewRouter(svc)
	r.Start(cfg.Addr)
}
