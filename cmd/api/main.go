package main

import (
	"flag"

	"github.com/atakan/campusadmin/internal/pkg/logger"
	"github.com/atakan/campusadmin/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize server")
	}

	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("Server exited with error")
	}
}
