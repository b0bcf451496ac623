package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bhavesh2823/Empora/internal/middleware"
	"github.com/Bhavesh2823/Empora/internal/shared/connection"
	"github.com/Bhavesh2823/Empora/internal/shared/fieldcrypto"
	"github.com/Bhavesh2823/Empora/internal/tenantdb"
)

func dbConfigFromEnv() connection.DBConfig {
	return connection.DBConfig{
		Host:     os.Getenv("DB_HOST"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Port:     os.Getenv("DB_PORT"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}
}

// BuildApp connects infrastructure and mounts every module on the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L()
	dbCfg := dbConfigFromEnv()

	registryDB, err := connection.ConnectGORMWithRetry(dbCfg, 5)
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	codec, err := fieldcrypto.New(
		os.Getenv("ENCRYPTION_KEY"),
		os.Getenv("IV"),
		logger,
	)
	if err != nil {
		return err
	}

	storeRouter := tenantdb.NewRouter(tenantdb.Config{DB: dbCfg})

	router.Use(middleware.RequestID(), middleware.ContextLogger(logger))

	return registerModules(router, registryDB, redisClient, codec, storeRouter)
}
