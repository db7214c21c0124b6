package main

import (
	"os"

	"github.com/kodin/caluu-backend/internal/pkg/logger"
	"github.com/kodin/caluu-backend/internal/server"
)

// @title Caluu API
// @version 1.0
// @description Course planning and GPA calculation backend for Tanzanian universities

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed")
		os.Exit(1)
	}
}
