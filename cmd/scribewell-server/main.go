package main

import (
	"net/http"

	"scribewell-backend/internal/config"
	"scribewell-backend/internal/logger"
	"scribewell-backend/internal/server"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogJSON)

	s, err := server.NewServer(cfg, log, server.Deps{})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	addr := ":" + cfg.Port
	log.Infof("scribewell server listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
