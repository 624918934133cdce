package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/germarr/static-worldcup/handlers"
	"github.com/germarr/static-worldcup/middleware"
)

// SetupRoutes mounts the full API surface on the router. The public surface
// needs no accounts; admin reference-data mutations sit behind JWT auth.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	jwtSecret []byte,
	predictionHandler *handlers.PredictionHandler,
	poolHandler *handlers.PoolHandler,
	referenceHandler *handlers.ReferenceHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Member-Token", "X-Creator-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api", func(r chi.Router) {
		// Reference data, read-only.
		r.Get("/teams", referenceHandler.ListTeamsHandler)
		r.Get("/stadiums", referenceHandler.ListStadiumsHandler)
		r.Get("/matches", referenceHandler.ListMatchesHandler)

		// Prediction views derived from a state token.
		r.Route("/predictions/{token}", func(r chi.Router) {
			r.Get("/", predictionHandler.ViewHandler)
			r.Get("/standings", predictionHandler.StandingsHandler)
			r.Get("/thirds", predictionHandler.ThirdsHandler)
			r.Get("/bracket", predictionHandler.BracketHandler)
			r.Get("/score", predictionHandler.ScoreHandler)
		})

		// Pools.
		r.Route("/pools", func(r chi.Router) {
			r.Post("/", poolHandler.CreateHandler)
			r.Route("/{code}", func(r chi.Router) {
				r.Get("/", poolHandler.GetHandler)
				r.Delete("/", poolHandler.DeleteHandler)
				r.Post("/join", poolHandler.JoinHandler)
				r.Put("/members/{displayName}", poolHandler.UpdateBracketHandler)
				r.Delete("/members/{displayName}", poolHandler.LeaveHandler)
			})
		})

		// Admin mutations.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize("admin"))

			r.Post("/reference", referenceHandler.ImportHandler)
			r.Post("/teams/{teamID}/flag", referenceHandler.UploadFlagHandler)
			r.Put("/matches/{matchID}/result", referenceHandler.RecordResultHandler)
		})
	})

	router.Get("/ws/pools/{code}", webSocketHandler.ServeWs)
}
