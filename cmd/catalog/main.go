package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/grimoire/catalog-service/app"
	"github.com/grimoire/catalog-service/config"
)

func main() {
	_ = godotenv.Load()

	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		log.Fatal("run ", err)
	}
}
