package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Bhavesh2823/Empora/internal/app"
	"github.com/Bhavesh2823/Empora/internal/shared/apperror"
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

	if err := app.RunWorker(); err != nil {
		logger.Fatal("worker exited", zap.Error(err))
	}
}
