package main

import (
	"log"

	"github.com/Adinlo/colrag/internal/app"
	"github.com/Adinlo/colrag/internal/config"
	"github.com/Adinlo/colrag/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.InitLogger(cfg.Env); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := app.Run(cfg); err != nil {
		log.Fatal(err)
	}
}
