package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/lazharichir/holdem/server"
	"github.com/lazharichir/holdem/table"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	s := server.NewServer(table.DefaultConfig(), logger)
	if err := s.Start("7777"); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
