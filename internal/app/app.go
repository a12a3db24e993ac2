package app

import (
	"context"
	"fmt"

	"qsim/internal/archive"
	"qsim/internal/budget"
	"qsim/internal/config"
	"qsim/internal/handler"
	"qsim/internal/repository/qcdb"
	"qsim/internal/server"
	"qsim/internal/service/progress"
	"qsim/internal/service/simulation"
)

type App struct {
	server *server.Server
	store  *qcdb.Store
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Dependencies
	store := qcdb.NewFromConfig(cfg.DatabaseURL)
	progressStore := progress.NewStore()
	archiveStore, err := archive.FromConfig(cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize archive store: %w", err)
	}
	simSvc := simulation.New(store, progressStore, archiveStore)

	simBudget := budget.NewCounter("simulations", cfg.Budget.DailySimulations)
	resetBudget := budget.NewCounter("db_resets", cfg.Budget.DailyResets)

	healthHandler := handler.NewHealthHandler(store)
	adminHandler := handler.NewAdminHandler(store, resetBudget)
	statesHandler := handler.NewStatesHandler(store)
	gatesHandler := handler.NewGatesHandler(store)
	simulationsHandler := handler.NewSimulationsHandler(store, simSvc, progressStore, simBudget)
	shotsHandler := handler.NewShotsHandler(store)
	progressWSHandler := handler.NewProgressWSHandler(progressStore)

	// Routing & Server
	mux := server.NewMux(
		healthHandler,
		adminHandler,
		statesHandler,
		gatesHandler,
		simulationsHandler,
		shotsHandler,
		progressWSHandler,
	)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		store:  store,
	}, nil
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if closeErr := a.store.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
