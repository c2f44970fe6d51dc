package main

import (
	"log"

	"resume-optimizer/internal/bootstrap"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()

	telemetry.Init(cfg.LogLevel)
	defer telemetry.Sync()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	addr := bootstrap.Addr(cfg.Port)
	log.Printf("resume optimizer listening on %s (env=%s)", addr, cfg.Env)
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
