package app

import (
	"fmt"
	"log/slog"
	"net/http"
	carthandler "shopapi/internal/handlers/cart"
	cataloghandler "shopapi/internal/handlers/catalog"
	"shopapi/internal/routes"
	cartservice "shopapi/internal/service/cart"
	catalogservice "shopapi/internal/service/catalog"
)

// Storage is everything the app needs from the database layer; the psql
// Storage satisfies both halves.
type Storage interface {
	catalogservice.ProductStorage
	cartservice.CartStorage
}

type App struct {
	log     *slog.Logger
	port    int
	storage Storage
}

func New(log *slog.Logger, port int, storage Storage) *App {
	return &App{
		log:     log,
		port:    port,
		storage: storage,
	}
}

func (a *App) MustRun() {
	if err := a.Run(); err != nil {
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "app.Run"

	catalogService := catalogservice.New(a.log, a.storage)
	cartService := cartservice.New(a.log, a.storage, catalogService)

	catalogHandler := cataloghandler.New(a.log, catalogService)
	cartHandler := carthandler.New(a.log, cartService)

	routes.New(catalogHandler, cartHandler).Register()

	if err := http.ListenAndServe(
		fmt.Sprintf(":%d", a.port),
		nil,
	); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
