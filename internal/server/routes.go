package server

import (
	"net/http"

	"qsim/internal/handler"
	"qsim/internal/middleware"
)

// NewMux wires every route with its rate-limit tier. Read endpoints get a
// generous budget, mutations less, and simulation creation the least since
// each call fans out into background shot generation.
func NewMux(
	healthHandler *handler.HealthHandler,
	adminHandler *handler.AdminHandler,
	statesHandler *handler.StatesHandler,
	gatesHandler *handler.GatesHandler,
	simulationsHandler *handler.SimulationsHandler,
	shotsHandler *handler.ShotsHandler,
	progressWSHandler *handler.ProgressWSHandler,
) http.Handler {
	reads := middleware.PerMinute(60)
	writes := middleware.PerMinute(20)
	simCreate := middleware.PerMinute(10)
	polling := middleware.PerMinute(120)
	resets := middleware.PerMinute(5)
	pings := middleware.PerMinute(30)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /db-ping", pings.Wrap(healthHandler.DBPing))
	mux.HandleFunc("POST /reset", resets.Wrap(adminHandler.Reset))

	mux.HandleFunc("GET /states", reads.Wrap(statesHandler.List))
	mux.HandleFunc("POST /states", writes.Wrap(statesHandler.Create))
	mux.HandleFunc("PUT /states/{id}", writes.Wrap(statesHandler.Update))
	mux.HandleFunc("DELETE /states/{id}", writes.Wrap(statesHandler.Delete))

	mux.HandleFunc("GET /gates", reads.Wrap(gatesHandler.List))

	mux.HandleFunc("GET /simulations", reads.Wrap(simulationsHandler.List))
	mux.HandleFunc("POST /simulations", simCreate.Wrap(simulationsHandler.Create))
	mux.HandleFunc("DELETE /simulations/{simID}", writes.Wrap(simulationsHandler.Delete))
	mux.HandleFunc("GET /simulations/{simID}/progress", polling.Wrap(simulationsHandler.GetProgress))
	mux.HandleFunc("DELETE /simulations/{simID}/progress", polling.Wrap(simulationsHandler.ClearProgress))

	mux.HandleFunc("GET /shots", reads.Wrap(shotsHandler.Index))
	mux.HandleFunc("GET /shots/{simID}", reads.Wrap(shotsHandler.Selected))

	mux.HandleFunc("GET /ws/progress", progressWSHandler.HandleProgressWS)

	return middleware.CORS(mux)
}
