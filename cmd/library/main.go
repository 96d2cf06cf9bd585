package main

import (
	stdLog "log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/schoolhub/library-service/app"
	"github.com/schoolhub/library-service/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, reading config from environment")
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithWriteTimeout(time.Minute),
	)

	if err := app.Run(cfg); err != nil {
		stdLog.Fatal(err)
	}
}
