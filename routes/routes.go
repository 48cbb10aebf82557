package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/padel-tournament/handlers"
	"github.com/Dosada05/padel-tournament/middleware"
	"github.com/Dosada05/padel-tournament/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Tournament *handlers.TournamentHandler
	Ranking    *handlers.RankingHandler
	Format     *handlers.FormatHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(
	router chi.Router,
	h Handlers,
	authService services.AuthService,
	allowedOrigins []string,
	logger *slog.Logger,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Живая лента не проходит через таймаут: соединение долгоживущее.
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(30 * time.Second))
		r.Use(middleware.Authenticate(authService, logger))

		r.Post("/auth/login", h.Auth.Login)

		r.Get("/formats", h.Format.ListFormats)
		r.Get("/courts", h.Format.ListCourts)

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.Format.ListTemplates)
			r.Route("/{templateID}", func(r chi.Router) {
				r.Get("/ranking", h.Ranking.GetRanking)
				r.Get("/players", h.Ranking.ListPlayers)
				r.Get("/events", h.Tournament.ListEvents)
				r.With(middleware.RequireOrganizer).Post("/events", h.Tournament.OpenEvent)
			})
		})

		r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetTournament)
			r.Get("/groups", h.Tournament.GetStandings)
			r.Get("/classification", h.Tournament.GetClassification)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireOrganizer)

				r.Put("/format", h.Tournament.SetFormat)
				r.Put("/pairs", h.Tournament.SetPairs)
				r.Put("/courts", h.Tournament.SetCourts)
				r.Post("/schedule", h.Tournament.GenerateSchedule)
				r.Put("/rounds/{round}/results", h.Tournament.SaveRoundResults)
				r.Post("/finals", h.Tournament.GenerateFinals)
				r.Post("/ladder/regenerate", h.Tournament.RegenerateLadder)
				r.Post("/ladder/rounds/{round}/advance", h.Tournament.AdvanceLadder)
				r.Post("/close", h.Tournament.CloseTournament)
				r.Post("/export", h.Tournament.ExportTournament)
				r.Delete("/", h.Tournament.DeleteTournament)
			})
		})
	})
}
