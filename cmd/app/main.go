package main

import (
	"os"
	"os/signal"
	"shopapi/internal/app"
	"shopapi/internal/database/psql"
	"shopapi/pkg/config"
	"shopapi/pkg/lib/logger"
	"shopapi/pkg/lib/logger/sl"
	"syscall"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.SetupLogger(cfg.HTTP.Env)
	if err != nil {
		panic(err)
	}

	storage := psql.New(log, cfg.ConnectionString())

	application := app.New(
		log,
		cfg.HTTP.Port,
		storage,
	)

	go func() {
		if err := application.Run(); err != nil {
			log.Error("Application failed to start", sl.Err(err))
			panic(err)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT)
	<-done

	log.Info("Closing database")
	storage.Close()
}
