package main

import (
	"log"

	"github.com/docqa-team/docqa-backend/config"
	"github.com/docqa-team/docqa-backend/internal/bootstrap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	core := bootstrap.BuildCore(cfg)
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "docqa-backend",
		Version:     cfg.App.Version,
		Core:        core,
	})

	log.Printf("listening on :%s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
