package main

import (
	"VyapaarAI/internal/config"
	"VyapaarAI/pkg/log"
	"VyapaarAI/pkg/redis"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// newLogger loads the env files first so APP_ENV, LOG_LEVEL and LOG_DIR
// reach the logger, which is only built once.
func newLogger(envFiles ...string) *logrus.Logger {
	envErr := godotenv.Load(envFiles...)

	logger := log.NewLogger()
	if envErr != nil {
		logger.Warnf("No .env file loaded: %v", envErr)
	}
	return logger
}

func main() {
	logger := newLogger()

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer, _ := redis.New(logger)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithS3Client(),
		config.WithMiddleware(),
		config.WithBcryptUtils(),
		config.WithUtils(),
		config.WithCatalog(os.Getenv("CATALOG_PATH")),
		config.WithStorage(config.EnvString("STATIC_DIR", "static")),
		config.WithDetector(os.Getenv("DETECTOR_BACKEND")),
		config.WithWorkerPool(config.EnvInt("INFERENCE_WORKERS", 0)),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server.StartJanitor(ctx)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-ctx.Done()
	logger.Info("Shutting down server...")
	server.Shutdown()
}
