package main

import (
	"fmt"
	"os"

	"github.com/gzxsprite-cmd/PFIS/internal/config"
	"github.com/gzxsprite-cmd/PFIS/internal/database"
	"github.com/gzxsprite-cmd/PFIS/internal/logger"
	"github.com/gzxsprite-cmd/PFIS/internal/router"
	"github.com/gzxsprite-cmd/PFIS/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatal("create upload dir", zap.Error(err))
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal("init database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("auto migrate", zap.Error(err))
	}
	if err := database.EnsureMasterDefaults(db, log); err != nil {
		log.Fatal("seed master data", zap.Error(err))
	}

	s := store.New(db, log)
	r := router.SetupRouter(cfg, s, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
