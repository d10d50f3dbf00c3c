package main

import (
	"krishr/internal/app"
	"krishr/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunMailer(); err != nil {
		logger.Fatal("run mailer failed", zap.Error(err))
	}
}
